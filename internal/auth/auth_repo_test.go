package auth_test

import (
	"context"
	"testing"

	"jornada40/internal/auth"
	"jornada40/internal/auth/token"
	"jornada40/internal/company"
	"jornada40/internal/customer"
	"jornada40/internal/plan"

	autherrors "jornada40/internal/auth/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSignupDB(t *testing.T) (*gorm.DB, auth.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&plan.Plan{}, &auth.User{}, &customer.Customer{}, &company.Company{}))
	plans := plan.NewService(plan.NewRepository(db), nil)
	require.NoError(t, plans.SeedDefaults(context.Background()))

	svc := auth.NewService(auth.Deps{
		DB:        db,
		Users:     auth.NewRepository(db),
		Customers: customer.NewRepository(db),
		Companies: company.NewRepository(db),
		Plans:     plans,
		Tokens:    token.NewManager("test-secret"),
	})
	return db, svc
}

func TestSignup_LegalEntityOwnsItsCompany(t *testing.T) {
	db, svc := setupSignupDB(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, auth.RegisterRequest{
		Email:        "rrhh@losandes.cl",
		Password:     "secreto123",
		CustomerType: "LEGAL_ENTITY",
		TaxID:        "76.543.210-3",
		PlanID:       plan.PlanPyme,
		BusinessName: "Comercial Los Andes SpA",
	})
	require.NoError(t, err)

	companies, err := company.NewRepository(db).FindAllByOwner(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, resp.CompanyID, companies[0].ID.String())
	assert.Equal(t, "76543210-3", companies[0].TaxID)

	_, _, me, err := svc.Login(ctx, "RRHH@losandes.cl", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, plan.PlanPyme, me.PlanID)

	_, err = svc.Register(ctx, auth.RegisterRequest{
		Email:           "rrhh@losandes.cl",
		Password:        "secreto123",
		CustomerType:    "PERSON",
		TaxID:           "12345678-5",
		PlanID:          plan.PlanSemilla,
		FirstNames:      "Ana",
		PaternalSurname: "Rojas",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}

func TestSignup_RollsBackOnConflict(t *testing.T) {
	db, svc := setupSignupDB(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Email:           "ana@example.cl",
		Password:        "secreto123",
		CustomerType:    "PERSON",
		TaxID:           "12345678-5",
		PlanID:          plan.PlanSemilla,
		FirstNames:      "Ana",
		PaternalSurname: "Rojas",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterRequest{
		Email:           "otra@example.cl",
		Password:        "secreto123",
		CustomerType:    "PERSON",
		TaxID:           "12.345.678-5",
		PlanID:          plan.PlanSemilla,
		FirstNames:      "Otra",
		PaternalSurname: "Persona",
	})
	assert.ErrorIs(t, err, autherrors.ErrTaxIDAlreadyRegistered)

	var users int64
	require.NoError(t, db.Model(&auth.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	exists, err := auth.NewRepository(db).EmailExists(ctx, "otra@example.cl")
	require.NoError(t, err)
	assert.False(t, exists)
}
