package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type company struct {
	ID      string `gorm:"primaryKey"`
	OwnerID string
}

type employee struct {
	ID        string `gorm:"primaryKey"`
	CompanyID string
}

type contract struct {
	ID         string `gorm:"primaryKey"`
	EmployeeID string
}

func (company) TableName() string  { return "companies" }
func (employee) TableName() string { return "employees" }
func (contract) TableName() string { return "contracts" }

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&company{}, &employee{}, &contract{}))

	require.NoError(t, db.Create([]company{{ID: "co-a", OwnerID: "alice"}, {ID: "co-b", OwnerID: "bob"}}).Error)
	require.NoError(t, db.Create([]employee{{ID: "em-a", CompanyID: "co-a"}, {ID: "em-b", CompanyID: "co-b"}}).Error)
	require.NoError(t, db.Create([]contract{{ID: "ct-a", EmployeeID: "em-a"}, {ID: "ct-b", EmployeeID: "em-b"}}).Error)
	return db
}

func TestScopes(t *testing.T) {
	db := seed(t)

	t.Run("companies", func(t *testing.T) {
		var got []company
		require.NoError(t, db.Scopes(CompanyScope("alice")).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, "co-a", got[0].ID)
	})

	t.Run("employees", func(t *testing.T) {
		var got []employee
		require.NoError(t, db.Scopes(EmployeeScope("bob")).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, "em-b", got[0].ID)
	})

	t.Run("contracts", func(t *testing.T) {
		var got []contract
		require.NoError(t, db.Scopes(ContractScope("alice")).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, "ct-a", got[0].ID)
	})

	t.Run("stranger sees nothing", func(t *testing.T) {
		var got []contract
		require.NoError(t, db.Scopes(ContractScope("mallory")).Find(&got).Error)
		assert.Empty(t, got)
	})
}

func TestOwnership(t *testing.T) {
	db := seed(t)

	ok, err := OwnsCompany(db, "alice", "co-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = OwnsCompany(db, "alice", "co-b")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = OwnsEmployee(db, "bob", "em-b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = OwnsEmployee(db, "bob", "em-a")
	require.NoError(t, err)
	assert.False(t, ok)
}
