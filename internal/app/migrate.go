package app

import (
	"context"
	"jornada40/internal/audit"
	"jornada40/internal/auth"
	"jornada40/internal/company"
	"jornada40/internal/contract"
	"jornada40/internal/customer"
	"jornada40/internal/employee"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/plan"
	"jornada40/internal/shared/counter"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists the tables owned by the API, parents first.
func Models() []any {
	return []any{
		&plan.Plan{},
		&auth.User{},
		&customer.Customer{},
		&company.Company{},
		&employee.Employee{},
		&contract.Contract{},
		&counter.CompanyCounter{},
		&kafka.OutboxEvent{},
		&audit.Entry{},
	}
}

// Migrate brings the schema to the current revision and seeds the plans.
func Migrate(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return err
	}
	if err := plan.NewService(plan.NewRepository(db), nil, logger).SeedDefaults(ctx); err != nil {
		return err
	}
	logger.Named("app.migrate").Info("schema migrated", zap.Int("tables", len(Models())))
	return nil
}
