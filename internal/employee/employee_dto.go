package employee

type CreateEmployeeRequest struct {
	CompanyID      string `json:"company_id" binding:"required"`
	EmployeeNumber string `json:"employee_number" binding:"max=20"`
	TaxID          string `json:"tax_id" binding:"required,rut"`
	FirstNames     string `json:"first_names" binding:"required,max=100"`
	LastNames      string `json:"last_names" binding:"required,max=100"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"max=20"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Sex            string `json:"sex" binding:"omitempty,oneof=M F O"`
	MaritalStatus  string `json:"marital_status" binding:"max=20"`
	Nationality    string `json:"nationality" binding:"max=50"`
	Role           string `json:"role" binding:"max=100"`
	Department     string `json:"department" binding:"max=100"`
	Branch         string `json:"branch" binding:"max=100"`
	WorkModality   string `json:"work_modality" binding:"omitempty,oneof=ON_SITE REMOTE HYBRID"`
	BaseSalary     int64  `json:"base_salary" binding:"gte=0"`
	HealthSystem   string `json:"health_system" binding:"omitempty,oneof=FONASA ISAPRE"`
	PensionFund    string `json:"pension_fund" binding:"max=50"`
	HireDate       string `json:"hire_date" binding:"required,datetime=2006-01-02"`
	IsActive       *bool  `json:"is_active"`
}

// UpdateEmployeeRequest replaces every editable field (PUT).
type UpdateEmployeeRequest = CreateEmployeeRequest

// PatchEmployeeRequest only touches the fields that are present (PATCH).
type PatchEmployeeRequest struct {
	CompanyID      *string `json:"company_id"`
	EmployeeNumber *string `json:"employee_number" binding:"omitempty,min=1,max=20"`
	TaxID          *string `json:"tax_id" binding:"omitempty,rut"`
	FirstNames     *string `json:"first_names" binding:"omitempty,min=1,max=100"`
	LastNames      *string `json:"last_names" binding:"omitempty,min=1,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone" binding:"omitempty,max=20"`
	BirthDate      *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Sex            *string `json:"sex" binding:"omitempty,oneof=M F O"`
	MaritalStatus  *string `json:"marital_status" binding:"omitempty,max=20"`
	Nationality    *string `json:"nationality" binding:"omitempty,max=50"`
	Role           *string `json:"role" binding:"omitempty,max=100"`
	Department     *string `json:"department" binding:"omitempty,max=100"`
	Branch         *string `json:"branch" binding:"omitempty,max=100"`
	WorkModality   *string `json:"work_modality" binding:"omitempty,oneof=ON_SITE REMOTE HYBRID"`
	BaseSalary     *int64  `json:"base_salary" binding:"omitempty,gte=0"`
	HealthSystem   *string `json:"health_system" binding:"omitempty,oneof=FONASA ISAPRE"`
	PensionFund    *string `json:"pension_fund" binding:"omitempty,max=50"`
	HireDate       *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	IsActive       *bool   `json:"is_active"`
}

type EmployeeFilter struct {
	CompanyID string
	IsActive  *bool
}

type EmployeeContractResponse struct {
	ID           string  `json:"id"`
	ScheduleType string  `json:"schedule_type"`
	WeeklyHours  float64 `json:"weekly_hours"`
	WorkingDays  int     `json:"working_days"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

type EmployeeResponse struct {
	ID             string                    `json:"id"`
	CompanyID      string                    `json:"company_id"`
	EmployeeNumber string                    `json:"employee_number"`
	TaxID          string                    `json:"tax_id"`
	FirstNames     string                    `json:"first_names"`
	LastNames      string                    `json:"last_names"`
	FullName       string                    `json:"full_name"`
	Email          string                    `json:"email"`
	Phone          string                    `json:"phone"`
	BirthDate      *string                   `json:"birth_date"`
	Sex            string                    `json:"sex"`
	MaritalStatus  string                    `json:"marital_status"`
	Nationality    string                    `json:"nationality"`
	Role           string                    `json:"role"`
	Department     string                    `json:"department"`
	Branch         string                    `json:"branch"`
	WorkModality   string                    `json:"work_modality"`
	BaseSalary     int64                     `json:"base_salary"`
	HealthSystem   string                    `json:"health_system"`
	PensionFund    string                    `json:"pension_fund"`
	HireDate       string                    `json:"hire_date"`
	IsActive       bool                      `json:"is_active"`
	Contract       *EmployeeContractResponse `json:"contract"`
}

type EmployeeOptionResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	TaxID     string `json:"tax_id"`
	CompanyID string `json:"company_id"`
}
