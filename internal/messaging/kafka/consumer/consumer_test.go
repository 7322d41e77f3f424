package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jornada40/internal/audit"
	"jornada40/internal/bootstrap"
	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka/consumer"

	auditMock "jornada40/internal/audit/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeReader serves queued messages and then blocks until the context ends.
type fakeReader struct {
	queue     []kafkago.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type auditSink struct {
	entries []bootstrap.AuditLog
	done    chan struct{}
	want    int
}

func (s *auditSink) Log(_ context.Context, entry bootstrap.AuditLog) {
	s.entries = append(s.entries, entry)
	if len(s.entries) == s.want {
		close(s.done)
	}
}

func TestConsumeLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := auditMock.NewMockService(ctrl)

	reader := &fakeReader{queue: []kafkago.Message{
		{Offset: 1, Value: []byte("garbage")},
		{Offset: 2, Value: []byte("transient")},
		{Offset: 3, Value: []byte("dup")},
		{Offset: 4, Value: []byte("fresh")},
	}}
	sink := &auditSink{done: make(chan struct{}), want: 1}

	fresh := events.LifecycleEvent{
		EventID:       "evt-4",
		EventType:     events.EmployeeCreated,
		AggregateType: events.AggregateEmployee,
		AggregateID:   "emp-1",
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		recorder.EXPECT().Record(ctx, []byte("garbage")).Return(events.LifecycleEvent{}, false, audit.ErrMalformedEvent),
		recorder.EXPECT().Record(ctx, []byte("transient")).Return(events.LifecycleEvent{}, false, errors.New("db down")),
		recorder.EXPECT().Record(ctx, []byte("dup")).Return(events.LifecycleEvent{EventID: "evt-3"}, false, nil),
		recorder.EXPECT().Record(ctx, []byte("fresh")).Return(fresh, true, nil),
	)

	stopped := make(chan struct{})
	go func() {
		consumer.ConsumeLifecycle(ctx, reader, recorder, sink, zap.NewNop())
		close(stopped)
	}()

	select {
	case <-sink.done:
	case <-time.After(5 * time.Second):
		t.Fatal("fresh event was not audited")
	}
	cancel()
	<-stopped

	assert.Equal(t, []int64{1, 3, 4}, reader.committed)
	require.Len(t, sink.entries, 1)
	assert.Equal(t, "EMPLOYEE_CREATED", sink.entries[0].Action)
	assert.Equal(t, "evt-4", sink.entries[0].Meta["event_id"])
}
