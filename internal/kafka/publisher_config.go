package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type PublisherConfig struct {
	Brokers      []string
	Topic        string
	RequiredAcks string // all|one|none

	WriteTimeout time.Duration
	BatchTimeout time.Duration
	RetryInitial time.Duration
	RetryMax     time.Duration
	MaxAttempts  int
}

// NewWriter — kafka.Writer по конфигу; ключ сообщения (cart id) определяет партицию.
func (c *PublisherConfig) NewWriter() *kafka.Writer {
	batch := c.BatchTimeout
	if batch <= 0 {
		batch = 10 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           c.requiredAcks(),
		BatchTimeout:           batch,
		WriteTimeout:           c.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}

func (c *PublisherConfig) requiredAcks() kafka.RequiredAcks {
	switch strings.ToLower(strings.TrimSpace(c.RequiredAcks)) {
	case "none":
		return kafka.RequireNone
	case "one":
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}
