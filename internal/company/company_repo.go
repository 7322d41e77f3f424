package company

import (
	"context"
	"jornada40/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	FindAllByOwner(ctx context.Context, ownerID string) ([]Company, error)
	FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Company, error)
	ExistsByOwner(ctx context.Context, ownerID string) (bool, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, ownerID, id string) error
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(ownerID)).
		Order("companies.legal_name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(ownerID)).
		First(&company, "companies.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) ExistsByOwner(ctx context.Context, ownerID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Company{}).
		Scopes(tenant.CompanyScope(ownerID)).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes the company together with its employees, their contracts
// and its counters. Callers run it inside a transaction.
func (r *repository) Delete(ctx context.Context, ownerID, id string) error {
	db := r.db.WithContext(ctx)

	var company Company
	if err := db.Scopes(tenant.CompanyScope(ownerID)).
		Select("companies.id").
		First(&company, "companies.id = ?", id).Error; err != nil {
		return err
	}

	if err := db.Exec(
		"DELETE FROM contracts WHERE employee_id IN (SELECT id FROM employees WHERE company_id = ?)",
		company.ID,
	).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM employees WHERE company_id = ?", company.ID).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM company_counters WHERE company_id = ?", company.ID).Error; err != nil {
		return err
	}

	return db.Delete(&Company{}, "id = ?", company.ID).Error
}
