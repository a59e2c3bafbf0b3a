//go:build integration

package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	ikafka "github.com/Gunvolt24/telecom_cart/internal/kafka"
	"github.com/Gunvolt24/telecom_cart/internal/testutil"
	"github.com/Gunvolt24/telecom_cart/pkg/logger"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// Опубликованное событие читается из топика с ключом cart id
func TestPublisher_Publish_TC(t *testing.T) {
	// длинный контекст только на старт контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "cart-events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	pub := ikafka.NewPublisher(&ikafka.PublisherConfig{
		Brokers:      kf.Brokers,
		Topic:        topic,
		WriteTimeout: 10 * time.Second,
		MaxAttempts:  5,
		RetryInitial: 200 * time.Millisecond,
		RetryMax:     2 * time.Second,
	}, logg)
	t.Cleanup(func() { _ = pub.Close() })

	event := domain.CartEvent{
		Type:       domain.EventCartCreated,
		CartID:     "cart-" + testutil.UniqSuffix(),
		ContextID:  "ctx-1",
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, pub.Publish(ctx, event))

	key, got, err := testutil.ReadCartEvent(ctx, kf.Brokers, topic, group)
	require.NoError(t, err)
	require.Equal(t, event.CartID, key)

	require.Equal(t, event.Type, got.Type)
	require.Equal(t, event.CartID, got.CartID)
	require.True(t, event.OccurredAt.Equal(got.OccurredAt))
}
