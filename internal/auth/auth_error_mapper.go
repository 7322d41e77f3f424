package auth

import (
	"errors"
	"strings"

	autherrors "jornada40/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return autherrors.ErrEmailAlreadyRegistered
		case "uq_customers_tax_id":
			return autherrors.ErrTaxIDAlreadyRegistered
		}
	}

	// sqlite: "UNIQUE constraint failed: users.email"
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "uq_users_email"), strings.Contains(errMsg, "users.email"):
		return autherrors.ErrEmailAlreadyRegistered
	case strings.Contains(errMsg, "uq_customers_tax_id"), strings.Contains(errMsg, "customers.tax_id"):
		return autherrors.ErrTaxIDAlreadyRegistered
	}

	return err
}
