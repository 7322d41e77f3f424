package auth

// RegisterRequest creates the login identity and its billing profile. Legal
// entities also get their company from business_name and tax_id.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	CustomerType    string `json:"customer_type" binding:"required,oneof=PERSON LEGAL_ENTITY"`
	TaxID           string `json:"tax_id" binding:"required,rut"`
	PlanID          string `json:"plan_id" binding:"required,max=30"`
	FirstNames      string `json:"first_names" binding:"max=100"`
	PaternalSurname string `json:"paternal_surname" binding:"max=100"`
	MaternalSurname string `json:"maternal_surname" binding:"max=100"`
	BusinessName    string `json:"business_name" binding:"max=255"`
	Phone           string `json:"phone" binding:"max=20"`
	Address         string `json:"address" binding:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	CustomerType string `json:"customer_type,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	PlanID       string `json:"plan_id,omitempty"`
	CompanyID    string `json:"company_id,omitempty"`
}
