package employeeerrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrCompanyNotOwned = apperror.Validation(
		"company_id",
		"Company does not exist",
	)
	ErrTaxIDAlreadyExists = apperror.Validation(
		"tax_id",
		"An employee with this RUT already exists in the company",
	)
	ErrInvalidTaxID = apperror.Validation(
		"tax_id",
		"RUT is not valid",
	)
	ErrEmployeeNumberAlreadyExists = apperror.Validation(
		"employee_number",
		"Employee number already exists in this company",
	)
	ErrInvalidHireDate = apperror.Validation(
		"hire_date",
		"Invalid hire_date format, expected YYYY-MM-DD",
	)
	ErrInvalidBirthDate = apperror.Validation(
		"birth_date",
		"Invalid birth_date format, expected YYYY-MM-DD",
	)
	ErrPlanEmployeeLimit = apperror.Validation(
		"plan",
		"The current plan does not allow more employees",
	)
)
