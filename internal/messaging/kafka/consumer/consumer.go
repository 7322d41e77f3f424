package consumer

import (
	"context"
	"errors"
	"jornada40/internal/audit"
	"jornada40/internal/bootstrap"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycle records every lifecycle event once. Undecodable messages
// are committed and dropped; storage failures leave the offset uncommitted
// so the message is redelivered.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	recorder audit.Service,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		event, recorded, err := recorder.Record(ctx, msg.Value)
		if err != nil {
			if errors.Is(err, audit.ErrMalformedEvent) {
				log.Error("decode lifecycle event failed",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record lifecycle event failed",
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		if !recorded {
			log.Warn("lifecycle event already recorded, skipping",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
			)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  strings.ToUpper(event.EventType),
			Message: event.AggregateType + " " + event.AggregateID,
			Meta: map[string]any{
				"event_id":   event.EventID,
				"owner_id":   event.OwnerID,
				"company_id": event.CompanyID,
				"request_id": event.RequestID,
			},
		})
	}
}
