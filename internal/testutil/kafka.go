//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// UniqueTopicAndGroup — топик событий корзины и группа читателя, уникальные на тест.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := UniqSuffix()
	return base + "-" + suffix, base + "-reader-" + suffix
}

// EnsureTopic — создаёт топик с одной партицией и ждёт его в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	client := &kafka.Client{Addr: kafka.TCP(bootstrapAddr(broker)), Timeout: 10 * time.Second}

	resp, err := client.CreateTopics(ctx, &kafka.CreateTopicsRequest{
		Topics: []kafka.TopicConfig{{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}},
	})
	if err != nil {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	if terr := resp.Errors[topic]; terr != nil && !errors.Is(terr, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, terr)
	}

	return waitTopicReady(ctx, client, topic)
}

// ReadCartEvent — первое событие корзины из топика; возвращает ключ сообщения и событие.
func ReadCartEvent(ctx context.Context, brokers []string, topic, group string) (string, domain.CartEvent, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	msg, err := r.ReadMessage(ctx)
	if err != nil {
		return "", domain.CartEvent{}, fmt.Errorf("read %q: %w", topic, err)
	}

	var ev domain.CartEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return "", domain.CartEvent{}, fmt.Errorf("decode cart event: %w", err)
	}
	return string(msg.Key), ev, nil
}

func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, client *kafka.Client, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		md, err := client.Metadata(ctx, &kafka.MetadataRequest{Topics: []string{topic}})
		if err == nil {
			for _, tp := range md.Topics {
				if tp.Name == topic && tp.Error == nil && len(tp.Partitions) > 0 {
					return nil
				}
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
