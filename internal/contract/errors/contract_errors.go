package contracterrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contract not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotOwned = apperror.Validation(
		"employee_id",
		"Employee does not exist",
	)
	ErrContractAlreadyExists = apperror.Validation(
		"employee_id",
		"The employee already has a contract",
	)
	ErrWeeklyHoursOutOfRange = apperror.Validation(
		"weekly_hours",
		"Weekly hours must be greater than 0 and at most 99.9",
	)
	ErrWeeklyHoursAboveLimit = apperror.Validation(
		"weekly_hours",
		"Weekly hours exceed the legal limit for the start date",
	)
	ErrPartTimeAboveLimit = apperror.Validation(
		"weekly_hours",
		"Part-time weekly hours may not exceed two thirds of the legal limit",
	)
	ErrInvalidWorkingDays = apperror.Validation(
		"working_days",
		"Working days are not allowed for this schedule type",
	)
	ErrInvalidScheduleType = apperror.Validation(
		"schedule_type",
		"Unknown schedule type",
	)
	ErrInvalidStartDate = apperror.Validation(
		"start_date",
		"Invalid start_date format, expected YYYY-MM-DD",
	)
	ErrInvalidEndDate = apperror.Validation(
		"end_date",
		"Invalid end_date format, expected YYYY-MM-DD",
	)
	ErrEndBeforeStart = apperror.Validation(
		"end_date",
		"end_date must not precede start_date",
	)
)
