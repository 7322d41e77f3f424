package companyerrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrTaxIDAlreadyExists = apperror.Validation(
		"tax_id",
		"A company with this RUT already exists",
	)

	ErrInvalidTaxID = apperror.Validation(
		"tax_id",
		"RUT is not valid",
	)

	ErrOwnerAlreadyHasCompany = apperror.Validation(
		"owner_id",
		"This account already owns a company",
	)
)
