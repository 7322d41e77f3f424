package customer

import (
	"time"

	"github.com/google/uuid"
)

type CustomerType string

const (
	CustomerPerson      CustomerType = "PERSON"
	CustomerLegalEntity CustomerType = "LEGAL_ENTITY"
)

type Customer struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_customers_user_id"`
	PlanID          string       `gorm:"type:varchar(30);not null;index"`
	CustomerType    CustomerType `gorm:"type:varchar(20);not null"`
	TaxID           string       `gorm:"type:varchar(12);not null;uniqueIndex:uq_customers_tax_id"`
	FirstNames      string       `gorm:"type:varchar(100)"`
	PaternalSurname string       `gorm:"type:varchar(100)"`
	MaternalSurname string       `gorm:"type:varchar(100)"`
	BusinessName    string       `gorm:"type:varchar(255)"`
	Phone           string       `gorm:"type:varchar(20)"`
	Address         string       `gorm:"type:varchar(255)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Plan *CustomerPlan `gorm:"foreignKey:PlanID;-:migration"`
}

func (Customer) TableName() string {
	return "customers"
}

// DisplayName is the business name for legal entities and the full name
// otherwise.
func (c Customer) DisplayName() string {
	if c.CustomerType == CustomerLegalEntity {
		return c.BusinessName
	}
	name := c.FirstNames + " " + c.PaternalSurname
	if c.MaternalSurname != "" {
		name += " " + c.MaternalSurname
	}
	return name
}

// CustomerPlan is the read-only view of the subscribed plan.
type CustomerPlan struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	PriceCLP     int64
	MaxCompanies int
	MaxEmployees int
	IsActive     bool
}

func (CustomerPlan) TableName() string {
	return "plans"
}
