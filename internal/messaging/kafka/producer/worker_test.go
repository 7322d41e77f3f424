package producer_test

import (
	"context"
	"errors"
	"testing"

	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/messaging/kafka/producer"

	kafkaMock "jornada40/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failKeys map[string]bool
	written  []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failKeys[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func pending(id, aggregate string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		AggregateType: events.AggregateContract,
		AggregateID:   aggregate,
		EventType:     events.ContractCreated,
		Topic:         events.LifecycleTopic,
		Payload:       []byte(`{"event_id":"` + id + `"}`),
		Status:        kafka.OutboxStatusPending,
		RetryCount:    1,
	}
}

func TestProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and reschedules failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failKeys: map[string]bool{"agg-2": true}}

		ok, broken := pending("evt-1", "agg-1"), pending("evt-2", "agg-2")
		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{ok, broken}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, broken, "broker unavailable").Return(nil)

		sent, err := producer.ProcessPending(ctx, repo, writer, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 1, sent)

		require.Len(t, writer.written, 1)
		msg := writer.written[0]
		assert.Equal(t, events.LifecycleTopic, msg.Topic)
		assert.Equal(t, "agg-1", string(msg.Key))
		assert.Equal(t, "event_id", msg.Headers[0].Key)
		assert.Equal(t, "evt-1", string(msg.Headers[0].Value))
	})

	t.Run("nothing due", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

		sent, err := producer.ProcessPending(ctx, repo, &fakeWriter{}, zap.NewNop())
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPending(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})
}
