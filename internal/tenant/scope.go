// Package tenant holds the ownership closure every scoped query goes through.
// A row is visible to a user only when it is transitively owned by them.
package tenant

import "gorm.io/gorm"

// CompanyScope keeps companies owned by ownerID.
func CompanyScope(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("companies.owner_id = ?", ownerID)
	}
}

// EmployeeScope keeps employees whose company is owned by ownerID.
func EmployeeScope(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"employees.company_id IN (SELECT companies.id FROM companies WHERE companies.owner_id = ?)",
			ownerID,
		)
	}
}

// ContractScope keeps contracts whose employee's company is owned by ownerID.
func ContractScope(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`contracts.employee_id IN (
				SELECT employees.id FROM employees
				JOIN companies ON companies.id = employees.company_id
				WHERE companies.owner_id = ?)`,
			ownerID,
		)
	}
}

// OwnsCompany reports whether companyID is inside ownerID's closure.
func OwnsCompany(db *gorm.DB, ownerID, companyID string) (bool, error) {
	var n int64
	err := db.Table("companies").
		Scopes(CompanyScope(ownerID)).
		Where("companies.id = ?", companyID).
		Count(&n).Error
	return n > 0, err
}

// OwnsEmployee reports whether employeeID is inside ownerID's closure.
func OwnsEmployee(db *gorm.DB, ownerID, employeeID string) (bool, error) {
	var n int64
	err := db.Table("employees").
		Scopes(EmployeeScope(ownerID)).
		Where("employees.id = ?", employeeID).
		Count(&n).Error
	return n > 0, err
}
