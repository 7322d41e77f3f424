package contract

import (
	"errors"
	"strings"

	contracterrors "jornada40/internal/contract/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError turns a missing row into ErrContractNotFound and unique
// violations into field errors. Other errors are returned unchanged.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contracterrors.ErrContractNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_contracts_employee" {
			return contracterrors.ErrContractAlreadyExists
		}
		if pgErr.Code == "23503" {
			return contracterrors.ErrEmployeeNotOwned
		}
	}

	// sqlite: "UNIQUE constraint failed: contracts.employee_id"
	errMsg := strings.ToLower(err.Error())
	if !isUniqueViolation(errMsg) {
		return err
	}
	if strings.Contains(errMsg, "uq_contracts_employee") || strings.Contains(errMsg, "contracts.employee_id") {
		return contracterrors.ErrContractAlreadyExists
	}

	return err
}

func isUniqueViolation(errMsg string) bool {
	return strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint failed")
}
