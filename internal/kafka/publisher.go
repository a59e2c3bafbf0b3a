package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Publisher удовлетворяет интерфейсу EventPublisher.
var _ ports.EventPublisher = (*Publisher)(nil)

// writer — минимальный контракт над kafka.Writer,
// чтобы легко подменять его моками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher — публикация событий корзины в Kafka.
type Publisher struct {
	writer       writer
	topic        string
	log          ports.Logger
	writeTimeout time.Duration
	retryInitial time.Duration
	retryMax     time.Duration
	maxAttempts  int
	jitterRand   *rand.Rand
	randMu       sync.Mutex
	closeOnce    sync.Once
}

// NewPublisher — конструктор. Нулевые параметры заменяются значениями по умолчанию.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	return newPublisher(cfg.NewWriter(), cfg, log)
}

func newPublisher(w writer, cfg *PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 2 * time.Second
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 100 * time.Millisecond
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = time.Second
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	return &Publisher{
		writer:       w,
		topic:        cfg.Topic,
		log:          log,
		writeTimeout: wt,
		retryInitial: rInit,
		retryMax:     rMax,
		maxAttempts:  attempts,
		// jitterRand — рассинхронизирует повторы нескольких запросов.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Publish — JSON-событие с ключом cart id; временные ошибки повторяются с backoff.
// Отмена ctx прерывает ожидание между попытками.
func (p *Publisher) Publish(ctx context.Context, event domain.CartEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		metrics.EventsFailed.WithLabelValues(string(event.Type)).Inc()
		return err
	}

	retry := p.retryInitial
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
		lastErr = p.writer.WriteMessages(writeCtx, msg)
		cancel()

		if lastErr == nil {
			metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()
			return nil
		}
		if ctx.Err() != nil || attempt == p.maxAttempts {
			break
		}

		sleep := p.withJitterEqual(retry)
		p.log.Debugf(ctx, "kafka write failed topic=%s attempt=%d: %v (retry in %s)", p.topic, attempt, lastErr, sleep)
		if !sleepWithBackoff(ctx, sleep) {
			break
		}
		retry = p.nextBackoff(retry)
	}

	metrics.EventsFailed.WithLabelValues(string(event.Type)).Inc()
	return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, lastErr)
}

// Close - закрывает writer. Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func encodeEvent(event domain.CartEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.CartID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
