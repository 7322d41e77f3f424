package planerrors

import "jornada40/internal/shared/apperror"

var ErrPlanNotAvailable = apperror.Validation(
	"plan_id",
	"Plan does not exist or is not active",
)
