package contract

type CreateContractRequest struct {
	EmployeeID            string   `json:"employee_id" binding:"required"`
	WeeklyHours           *float64 `json:"weekly_hours" binding:"omitempty,gte=0,lte=99.9"`
	WorkingDays           *int     `json:"working_days" binding:"omitempty,gte=1,lte=7"`
	ScheduleType          string   `json:"schedule_type" binding:"omitempty,oneof=ORDINARY BIWEEKLY ART_22 PART_TIME"`
	BaseSalary            *int64   `json:"base_salary" binding:"required,gte=0"`
	MealBreakCountsAsWork bool     `json:"meal_break_counts_as_work"`
	StartDate             string   `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate               *string  `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateContractRequest replaces every editable field (PUT).
type UpdateContractRequest = CreateContractRequest

// PatchContractRequest only touches the fields that are present (PATCH).
// An empty end_date clears it.
type PatchContractRequest struct {
	EmployeeID            *string  `json:"employee_id"`
	WeeklyHours           *float64 `json:"weekly_hours" binding:"omitempty,gte=0,lte=99.9"`
	WorkingDays           *int     `json:"working_days" binding:"omitempty,gte=1,lte=7"`
	ScheduleType          *string  `json:"schedule_type" binding:"omitempty,oneof=ORDINARY BIWEEKLY ART_22 PART_TIME"`
	BaseSalary            *int64   `json:"base_salary" binding:"omitempty,gte=0"`
	MealBreakCountsAsWork *bool    `json:"meal_break_counts_as_work"`
	StartDate             *string  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate               *string  `json:"end_date"`
}

type ContractFilter struct {
	EmployeeID string
	CompanyID  string
}

type ContractResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	EmployeeName          string  `json:"employee_name"`
	EmployeeTaxID         string  `json:"employee_tax_id"`
	CompanyID             string  `json:"company_id"`
	WeeklyHours           float64 `json:"weekly_hours"`
	WorkingDays           int     `json:"working_days"`
	ScheduleType          string  `json:"schedule_type"`
	ScheduleLabel         string  `json:"schedule_label"`
	BaseSalary            int64   `json:"base_salary"`
	MealBreakCountsAsWork bool    `json:"meal_break_counts_as_work"`
	StartDate             string  `json:"start_date"`
	EndDate               *string `json:"end_date"`
	LegalWeeklyLimit      float64 `json:"legal_weekly_limit"`
}
