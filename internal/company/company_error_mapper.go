package company

import (
	"errors"
	"strings"

	companyerrors "jornada40/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_companies_tax_id":
				return companyerrors.ErrTaxIDAlreadyExists
			case "uq_companies_owner":
				return companyerrors.ErrOwnerAlreadyHasCompany
			}
		}
	}

	// sqlite reports the columns instead of the index name
	errMsg := strings.ToLower(err.Error())
	if !isUniqueViolation(errMsg) {
		return err
	}
	if strings.Contains(errMsg, "uq_companies_tax_id") || strings.Contains(errMsg, "companies.tax_id") {
		return companyerrors.ErrTaxIDAlreadyExists
	}
	if strings.Contains(errMsg, "uq_companies_owner") || strings.Contains(errMsg, "companies.owner_id") {
		return companyerrors.ErrOwnerAlreadyHasCompany
	}

	return err
}

func isUniqueViolation(errMsg string) bool {
	return strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint failed")
}
