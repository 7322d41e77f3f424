package plan

type PlanResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceCLP     int64  `json:"price_clp"`
	MaxCompanies int    `json:"max_companies"`
	MaxEmployees int    `json:"max_employees"`
}
