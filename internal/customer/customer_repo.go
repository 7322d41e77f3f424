package customer

import (
	"context"
	"jornada40/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Customer) error
	FindByUserID(ctx context.Context, userID string) (*Customer, error)
	CountUsage(ctx context.Context, ownerID string) (companies, employees int64, err error)
	Update(ctx context.Context, c *Customer) error
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

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&c, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CountUsage(ctx context.Context, ownerID string) (int64, int64, error) {
	db := r.db.WithContext(ctx)

	var companies int64
	if err := db.Table("companies").Scopes(tenant.CompanyScope(ownerID)).Count(&companies).Error; err != nil {
		return 0, 0, err
	}

	var employees int64
	if err := db.Table("employees").Scopes(tenant.EmployeeScope(ownerID)).Count(&employees).Error; err != nil {
		return 0, 0, err
	}
	return companies, employees, nil
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}
