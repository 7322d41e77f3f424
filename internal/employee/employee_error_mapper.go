package employee

import (
	"errors"
	"strings"

	employeeerrors "jornada40/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_company_tax":
				return employeeerrors.ErrTaxIDAlreadyExists
			case "uq_employees_company_number":
				return employeeerrors.ErrEmployeeNumberAlreadyExists
			}
		}
		if pgErr.Code == "23503" {
			return employeeerrors.ErrCompanyNotOwned
		}
	}

	// sqlite: "UNIQUE constraint failed: employees.company_id, employees.tax_id"
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint failed") {
		switch {
		case strings.Contains(errMsg, "uq_employees_company_tax"), strings.Contains(errMsg, "employees.tax_id"):
			return employeeerrors.ErrTaxIDAlreadyExists
		case strings.Contains(errMsg, "uq_employees_company_number"), strings.Contains(errMsg, "employees.employee_number"):
			return employeeerrors.ErrEmployeeNumberAlreadyExists
		}
	}

	return err
}
