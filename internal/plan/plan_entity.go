package plan

import "time"

type Plan struct {
	ID           string `gorm:"type:varchar(30);primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	PriceCLP     int64  `gorm:"not null;default:0"`
	MaxCompanies int    `gorm:"not null"`
	MaxEmployees int    `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	SortOrder    int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Plan) TableName() string {
	return "plans"
}

const (
	PlanSemilla     = "semilla"
	PlanPyme        = "pyme"
	PlanCorporativo = "corporativo"
)

// DefaultPlans are the tiers offered at signup.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: PlanSemilla, Name: "Semilla", PriceCLP: 0, MaxCompanies: 1, MaxEmployees: 3, IsActive: true, SortOrder: 1},
		{ID: PlanPyme, Name: "Pyme", PriceCLP: 29990, MaxCompanies: 3, MaxEmployees: 40, IsActive: true, SortOrder: 2},
		{ID: PlanCorporativo, Name: "Corporativo", PriceCLP: 69990, MaxCompanies: 10, MaxEmployees: 150, IsActive: true, SortOrder: 3},
	}
}
