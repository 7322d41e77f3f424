package company_test

import (
	"context"
	"testing"
	"time"

	"jornada40/internal/company"
	companyerrors "jornada40/internal/company/errors"
	"jornada40/internal/employee"
	"jornada40/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&company.Company{}, &employee.Employee{}, &counter.CompanyCounter{}))
	require.NoError(t, db.Exec("CREATE TABLE contracts (id TEXT PRIMARY KEY, employee_id TEXT NOT NULL)").Error)
	return db
}

func newCompany(owner uuid.UUID, name, taxID string) *company.Company {
	return &company.Company{ID: uuid.New(), OwnerID: owner, LegalName: name, TaxID: taxID}
}

func TestRepository_OwnerScope(t *testing.T) {
	db := setupRepoDB(t)
	repo := company.NewRepository(db)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	aliceCo := newCompany(alice, "Alice SpA", "76543210-3")
	require.NoError(t, repo.Create(ctx, aliceCo))
	require.NoError(t, repo.Create(ctx, newCompany(bob, "Bob Ltda", "12345678-5")))

	list, err := repo.FindAllByOwner(ctx, alice.String())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice SpA", list[0].LegalName)

	_, err = repo.FindByIDAndOwner(ctx, bob.String(), aliceCo.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByOwner(ctx, alice.String())
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Delete(ctx, bob.String(), aliceCo.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UniqueTaxID(t *testing.T) {
	db := setupRepoDB(t)
	svc := company.NewService(db, company.NewRepository(db), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.NewString(), company.CreateCompanyRequest{LegalName: "A", TaxID: "76543210-3"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.NewString(), company.CreateCompanyRequest{LegalName: "B", TaxID: "76.543.210-3"})
	assert.ErrorIs(t, err, companyerrors.ErrTaxIDAlreadyExists)
}

func TestRepository_DeleteCascades(t *testing.T) {
	db := setupRepoDB(t)
	repo := company.NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	co := newCompany(owner, "Cascade SA", "76543210-3")
	require.NoError(t, repo.Create(ctx, co))

	empl := &employee.Employee{
		ID:             uuid.New(),
		CompanyID:      co.ID,
		EmployeeNumber: "EMP-000001",
		TaxID:          "12345678-5",
		FirstNames:     "Ana",
		LastNames:      "Pérez",
		WorkModality:   employee.WorkModalityOnSite,
		HireDate:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	require.NoError(t, db.Omit("Company", "Contract").Create(empl).Error)
	require.NoError(t, db.Exec("INSERT INTO contracts (id, employee_id) VALUES (?, ?)", uuid.NewString(), empl.ID).Error)
	_, err := counter.NewRepository(db).GetNextValue(ctx, co.ID.String(), counter.CounterEmployeeNumber)
	require.NoError(t, err)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).Delete(ctx, owner.String(), co.ID.String())
	}))

	for _, table := range []string{"companies", "employees", "contracts", "company_counters"} {
		var n int64
		require.NoError(t, db.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
}
