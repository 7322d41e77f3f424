package customererrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Customer profile not found",
		http.StatusNotFound,
	)
	ErrPlanTooSmall = apperror.Validation(
		"plan_id",
		"Current companies or employees exceed the limits of the selected plan",
	)
	ErrBusinessNameRequired = apperror.Validation(
		"business_name",
		"Business name is required for legal entities",
	)
	ErrPersonNameRequired = apperror.Validation(
		"first_names",
		"First names and paternal surname are required for persons",
	)
)
