package customer

// PatchCustomerRequest only touches the fields that are present. The
// customer type and RUT are fixed at signup.
type PatchCustomerRequest struct {
	PlanID          *string `json:"plan_id" binding:"omitempty,min=1,max=30"`
	FirstNames      *string `json:"first_names" binding:"omitempty,max=100"`
	PaternalSurname *string `json:"paternal_surname" binding:"omitempty,max=100"`
	MaternalSurname *string `json:"maternal_surname" binding:"omitempty,max=100"`
	BusinessName    *string `json:"business_name" binding:"omitempty,max=255"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Address         *string `json:"address" binding:"omitempty,max=255"`
}

type PlanSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceCLP     int64  `json:"price_clp"`
	MaxCompanies int    `json:"max_companies"`
	MaxEmployees int    `json:"max_employees"`
}

type UsageResponse struct {
	Companies int64 `json:"companies"`
	Employees int64 `json:"employees"`
}

type CustomerResponse struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	CustomerType    string        `json:"customer_type"`
	TaxID           string        `json:"tax_id"`
	DisplayName     string        `json:"display_name"`
	FirstNames      string        `json:"first_names"`
	PaternalSurname string        `json:"paternal_surname"`
	MaternalSurname string        `json:"maternal_surname"`
	BusinessName    string        `json:"business_name"`
	Phone           string        `json:"phone"`
	Address         string        `json:"address"`
	Plan            *PlanSummary  `json:"plan"`
	Usage           UsageResponse `json:"usage"`
}
