package app

import (
	"context"
	"jornada40/internal/audit"
	"jornada40/internal/bootstrap"
	"jornada40/internal/config"
	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka/consumer"
	"jornada40/internal/shared/connection"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const auditConsumerGroup = "jornada40-audit"

// RunConsumer stores lifecycle events in the audit trail until SIGINT or
// SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return ErrKafkaBrokerRequired
	}

	gormDB, err := connection.ConnectGORMWithRetry(dbConfig(cfg), connectRetries, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.DBAutoMigrate {
		if err := gormDB.AutoMigrate(&audit.Entry{}); err != nil {
			return err
		}
	}

	auditService := audit.NewService(audit.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LifecycleTopic,
		GroupID:        auditConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLifecycle(ctx, reader, auditService, bootstrap.NewZapAuditLogger(logger), logger)

	log.Info("consumer shutting down")
	return nil
}
