package annexerrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var ErrRenderFailed = apperror.New(
	apperror.CodeInternalError,
	"Failed to render contract annex",
	http.StatusInternalServerError,
)
