package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_companies_owner"`
	LegalName      string    `gorm:"type:varchar(255);not null"`
	TaxID          string    `gorm:"type:varchar(12);not null;uniqueIndex:uq_companies_tax_id"`
	Alias          string    `gorm:"type:varchar(100)"`
	LineOfBusiness string    `gorm:"type:varchar(255)"`
	Address        string    `gorm:"type:varchar(255)"`
	Commune        string    `gorm:"type:varchar(100)"`
	City           string    `gorm:"type:varchar(100)"`
	Branch         string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Company) TableName() string {
	return "companies"
}
