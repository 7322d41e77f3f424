package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ScheduleType string

const (
	ScheduleOrdinary ScheduleType = "ORDINARY"
	ScheduleBiweekly ScheduleType = "BIWEEKLY"
	ScheduleArt22    ScheduleType = "ART_22"
	SchedulePartTime ScheduleType = "PART_TIME"
)

// Label is the Spanish name printed on documents.
func (t ScheduleType) Label() string {
	switch t {
	case ScheduleOrdinary:
		return "Ordinaria (Lunes a Viernes/Sábado)"
	case ScheduleBiweekly:
		return "Bisemanal"
	case ScheduleArt22:
		return "Artículo 22 (Sin horario)"
	case SchedulePartTime:
		return "Part-Time"
	default:
		return string(t)
	}
}

type Contract struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_contracts_employee"`
	WeeklyHours           decimal.Decimal `gorm:"type:numeric(3,1);not null"`
	WorkingDays           int             `gorm:"not null"`
	ScheduleType          ScheduleType    `gorm:"type:varchar(20);not null"`
	BaseSalary            int64           `gorm:"not null"`
	MealBreakCountsAsWork bool            `gorm:"not null"`
	StartDate             time.Time       `gorm:"type:date;not null"`
	EndDate               *time.Time      `gorm:"type:date"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Employee *ContractEmployee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (Contract) TableName() string {
	return "contracts"
}

// ContractEmployee is the read-only view of the employee a contract belongs to.
type ContractEmployee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid"`
	TaxID      string
	FirstNames string
	LastNames  string
	Role       string

	Company *ContractCompany `gorm:"foreignKey:CompanyID;-:migration"`
}

func (ContractEmployee) TableName() string {
	return "employees"
}

func (e ContractEmployee) FullName() string {
	return e.FirstNames + " " + e.LastNames
}

type ContractCompany struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegalName string
	TaxID     string
	Address   string
	Commune   string
	City      string
}

func (ContractCompany) TableName() string {
	return "companies"
}
