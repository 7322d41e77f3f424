package audit_test

import (
	"context"
	"testing"
	"time"

	"jornada40/internal/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestRepository_InsertOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&audit.Entry{}))

	repo := audit.NewRepository(db)
	ctx := context.Background()
	aggregate := uuid.NewString()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	created := &audit.Entry{
		EventID:       uuid.NewString(),
		EventType:     "employee_created",
		AggregateType: "employee",
		AggregateID:   aggregate,
		OwnerID:       uuid.NewString(),
		OccurredAt:    base,
		RecordedAt:    base,
	}
	inserted, err := repo.Insert(ctx, created)
	require.NoError(t, err)
	assert.True(t, inserted)

	again := *created
	inserted, err = repo.Insert(ctx, &again)
	require.NoError(t, err)
	assert.False(t, inserted)

	deleted := *created
	deleted.EventID = uuid.NewString()
	deleted.EventType = "employee_deleted"
	deleted.OccurredAt = base.Add(time.Hour)
	_, err = repo.Insert(ctx, &deleted)
	require.NoError(t, err)

	rows, err := repo.FindByAggregate(ctx, aggregate)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "employee_created", rows[0].EventType)
	assert.Equal(t, "employee_deleted", rows[1].EventType)
}
