package employee

import (
	"context"
	"errors"
	"jornada40/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByOwner(ctx context.Context, ownerID string, filter EmployeeFilter) ([]Employee, error)
	FindOptionsByOwner(ctx context.Context, ownerID string) ([]Employee, error)
	FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Employee, error)
	CompanyOwnedBy(ctx context.Context, ownerID, companyID string) (bool, error)
	TaxIDTaken(ctx context.Context, companyID, taxID, excludeID string) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	EmployeeLimit(ctx context.Context, ownerID string) (limit int, found bool, err error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string, filter EmployeeFilter) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(ownerID)).
		Preload("Company").
		Preload("Contract")

	if filter.CompanyID != "" {
		q = q.Where("employees.company_id = ?", filter.CompanyID)
	}
	if filter.IsActive != nil {
		q = q.Where("employees.is_active = ?", *filter.IsActive)
	}

	var empls []Employee
	err := q.Order("employees.last_names ASC, employees.first_names ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByOwner(ctx context.Context, ownerID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("employees.id", "employees.company_id", "employees.tax_id", "employees.first_names", "employees.last_names").
		Scopes(tenant.EmployeeScope(ownerID)).
		Where("employees.is_active = ?", true).
		Order("employees.last_names ASC, employees.first_names ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndOwner(ctx context.Context, ownerID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(ownerID)).
		Preload("Contract").
		First(&empl, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) CompanyOwnedBy(ctx context.Context, ownerID, companyID string) (bool, error) {
	return tenant.OwnsCompany(r.db.WithContext(ctx), ownerID, companyID)
}

func (r *repository) TaxIDTaken(ctx context.Context, companyID, taxID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("company_id = ? AND tax_id = ?", companyID, taxID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.EmployeeScope(ownerID)).
		Count(&n).Error
	return n, err
}

// EmployeeLimit reads max_employees from the owner's plan. found is false
// when the owner has no billing profile.
func (r *repository) EmployeeLimit(ctx context.Context, ownerID string) (int, bool, error) {
	var row struct {
		MaxEmployees int
	}
	err := r.db.WithContext(ctx).
		Table("customers").
		Select("plans.max_employees").
		Joins("JOIN plans ON plans.id = customers.plan_id").
		Where("customers.user_id = ?", ownerID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.MaxEmployees, true, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(empl).Error
}

// Delete removes the employee and its contract. Callers run it inside a
// transaction.
func (r *repository) Delete(ctx context.Context, ownerID, id string) error {
	db := r.db.WithContext(ctx)

	var empl Employee
	if err := db.Scopes(tenant.EmployeeScope(ownerID)).
		Select("employees.id").
		First(&empl, "employees.id = ?", id).Error; err != nil {
		return err
	}

	if err := db.Exec("DELETE FROM contracts WHERE employee_id = ?", empl.ID).Error; err != nil {
		return err
	}
	return db.Delete(&Employee{}, "id = ?", empl.ID).Error
}
