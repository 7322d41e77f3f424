package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"jornada40/internal/events"
	"time"

	"go.uber.org/zap"
)

var ErrMalformedEvent = errors.New("malformed lifecycle event")

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	// Record decodes payload and stores it once. recorded is false for a
	// redelivery of an event already stored.
	Record(ctx context.Context, payload []byte) (event events.LifecycleEvent, recorded bool, err error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Record(ctx context.Context, payload []byte) (events.LifecycleEvent, bool, error) {
	var event events.LifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, false, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.EventID == "" || event.EventType == "" || event.AggregateID == "" {
		return event, false, ErrMalformedEvent
	}

	inserted, err := s.repo.Insert(ctx, &Entry{
		EventID:       event.EventID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		OwnerID:       event.OwnerID,
		CompanyID:     event.CompanyID,
		RequestID:     event.RequestID,
		OccurredAt:    event.OccurredAt.UTC(),
		RecordedAt:    s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("record lifecycle event failed", zap.String("event_id", event.EventID), zap.Error(err))
		return event, false, err
	}
	return event, inserted, nil
}
