package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
	SexOther  Sex = "O"
)

type WorkModality string

const (
	WorkModalityOnSite WorkModality = "ON_SITE"
	WorkModalityRemote WorkModality = "REMOTE"
	WorkModalityHybrid WorkModality = "HYBRID"
)

type HealthSystem string

const (
	HealthSystemFonasa HealthSystem = "FONASA"
	HealthSystemIsapre HealthSystem = "ISAPRE"
)

type Employee struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:uq_employees_company_tax,priority:1;uniqueIndex:uq_employees_company_number,priority:1"`
	EmployeeNumber string       `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_company_number,priority:2"`
	TaxID          string       `gorm:"type:varchar(12);not null;uniqueIndex:uq_employees_company_tax,priority:2"`
	FirstNames     string       `gorm:"type:varchar(100);not null"`
	LastNames      string       `gorm:"type:varchar(100);not null"`
	Email          string       `gorm:"type:varchar(255)"`
	Phone          string       `gorm:"type:varchar(20)"`
	BirthDate      *time.Time   `gorm:"type:date"`
	Sex            Sex          `gorm:"type:varchar(1)"`
	MaritalStatus  string       `gorm:"type:varchar(20)"`
	Nationality    string       `gorm:"type:varchar(50)"`
	Role           string       `gorm:"type:varchar(100)"`
	Department     string       `gorm:"type:varchar(100)"`
	Branch         string       `gorm:"type:varchar(100)"`
	WorkModality   WorkModality `gorm:"type:varchar(10);not null"`
	BaseSalary     int64        `gorm:"not null"`
	HealthSystem   HealthSystem `gorm:"type:varchar(10)"`
	PensionFund    string       `gorm:"type:varchar(50)"`
	HireDate       time.Time    `gorm:"type:date;not null"`
	IsActive       bool         `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Company  *EmployeeCompany  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Contract *EmployeeContract `gorm:"foreignKey:EmployeeID;-:migration"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstNames + " " + e.LastNames
}

// EmployeeCompany is the read-only view of the owning company.
type EmployeeCompany struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegalName string
	TaxID     string
}

func (EmployeeCompany) TableName() string {
	return "companies"
}

// EmployeeContract is the read-only view of the employee's contract.
type EmployeeContract struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid"`
	WeeklyHours  decimal.Decimal `gorm:"type:numeric(3,1)"`
	WorkingDays  int
	ScheduleType string
	StartDate    time.Time  `gorm:"type:date"`
	EndDate      *time.Time `gorm:"type:date"`
}

func (EmployeeContract) TableName() string {
	return "contracts"
}
