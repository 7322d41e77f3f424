package contract

import (
	"context"
	"jornada40/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=contract_repo.go -destination=mock/contract_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Contract) error
	FindAllByOwner(ctx context.Context, ownerID string, filter ContractFilter) ([]Contract, error)
	FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Contract, error)
	EmployeeOwnedBy(ctx context.Context, ownerID, employeeID string) (bool, error)
	ExistsForEmployee(ctx context.Context, employeeID, excludeID string) (bool, error)
	Update(ctx context.Context, c *Contract) error
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

func (r *repository) Create(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string, filter ContractFilter) ([]Contract, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.ContractScope(ownerID)).
		Preload("Employee.Company")

	if filter.EmployeeID != "" {
		q = q.Where("contracts.employee_id = ?", filter.EmployeeID)
	}
	if filter.CompanyID != "" {
		q = q.Where("contracts.employee_id IN (SELECT employees.id FROM employees WHERE employees.company_id = ?)", filter.CompanyID)
	}

	var contracts []Contract
	err := q.Order("contracts.start_date DESC, contracts.created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Contract, error) {
	var c Contract
	err := r.db.WithContext(ctx).
		Scopes(tenant.ContractScope(ownerID)).
		Preload("Employee.Company").
		First(&c, "contracts.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) EmployeeOwnedBy(ctx context.Context, ownerID, employeeID string) (bool, error) {
	return tenant.OwnsEmployee(r.db.WithContext(ctx), ownerID, employeeID)
}

func (r *repository) ExistsForEmployee(ctx context.Context, employeeID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Contract{}).
		Where("employee_id = ?", employeeID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.ContractScope(ownerID)).
		Delete(&Contract{}, "contracts.id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
