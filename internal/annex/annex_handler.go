package annex

import (
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("annex.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("annex.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http download annex", zap.String("contract_id", id))

	res, err := h.service.Generate(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("annex request failed", zap.String("contract_id", id), zap.Error(err))
		}
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	if res.Filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	}
	c.Data(http.StatusOK, res.ContentType, res.Body)
}
