package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CounterEmployeeNumber backs the EMP-000001 sequence.
const CounterEmployeeNumber = "employee_number"

// CompanyCounter holds the last issued value per company and counter type.
type CompanyCounter struct {
	CompanyID   string `gorm:"type:uuid;primaryKey"`
	CounterType string `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
}

func (CompanyCounter) TableName() string {
	return "company_counters"
}

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	// atomic upsert so concurrent creates in the same company never share a value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = excluded.updated_at
		RETURNING last_value
	`, companyID, counterType, time.Now().Unix()).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
