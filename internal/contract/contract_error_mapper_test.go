package contract

import (
	"errors"
	"testing"

	contracterrors "jornada40/internal/contract/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	storeFault := errors.New("no such column: contracts.employee_id")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"missing row", gorm.ErrRecordNotFound, contracterrors.ErrContractNotFound},
		{"postgres unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_contracts_employee"}, contracterrors.ErrContractAlreadyExists},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, contracterrors.ErrEmployeeNotOwned},
		{"sqlite unique", errors.New("UNIQUE constraint failed: contracts.employee_id"), contracterrors.ErrContractAlreadyExists},
		{"other error naming the column", storeFault, storeFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRepositoryError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
