package company

type CreateCompanyRequest struct {
	LegalName      string `json:"legal_name" binding:"required,max=255"`
	TaxID          string `json:"tax_id" binding:"required,rut"`
	Alias          string `json:"alias" binding:"max=100"`
	LineOfBusiness string `json:"line_of_business" binding:"max=255"`
	Address        string `json:"address" binding:"max=255"`
	Commune        string `json:"commune" binding:"max=100"`
	City           string `json:"city" binding:"max=100"`
	Branch         string `json:"branch" binding:"max=100"`
}

// UpdateCompanyRequest replaces every editable field (PUT).
type UpdateCompanyRequest = CreateCompanyRequest

// PatchCompanyRequest only touches the fields that are present (PATCH).
type PatchCompanyRequest struct {
	LegalName      *string `json:"legal_name" binding:"omitempty,min=1,max=255"`
	TaxID          *string `json:"tax_id" binding:"omitempty,rut"`
	Alias          *string `json:"alias" binding:"omitempty,max=100"`
	LineOfBusiness *string `json:"line_of_business" binding:"omitempty,max=255"`
	Address        *string `json:"address" binding:"omitempty,max=255"`
	Commune        *string `json:"commune" binding:"omitempty,max=100"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	Branch         *string `json:"branch" binding:"omitempty,max=100"`
}

type CompanyResponse struct {
	ID             string `json:"id"`
	OwnerID        string `json:"owner_id"`
	LegalName      string `json:"legal_name"`
	TaxID          string `json:"tax_id"`
	Alias          string `json:"alias"`
	LineOfBusiness string `json:"line_of_business"`
	Address        string `json:"address"`
	Commune        string `json:"commune"`
	City           string `json:"city"`
	Branch         string `json:"branch"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
