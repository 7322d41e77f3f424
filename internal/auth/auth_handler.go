package auth

import (
	"jornada40/internal/auth/token"
	"jornada40/internal/middleware"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/response"
	"net/http"
	"time"

	autherrors "jornada40/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const RefreshTokenCookie = "refresh_token"

type Handler struct {
	service       Service
	tokens        *token.Manager
	secureCookies bool
	logger        *zap.Logger
}

func NewHandler(s Service, tokens *token.Manager, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, tokens: tokens, secureCookies: secureCookies, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("auth request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http auth validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setSession(c *gin.Context, access, refresh string) {
	h.setCookie(c, middleware.AccessTokenCookie, access, h.tokens.AccessTTL())
	h.setCookie(c, RefreshTokenCookie, refresh, h.tokens.RefreshTTL())
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	access, refresh, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if resolveClientType(c) == ClientWeb {
		h.setSession(c, access, refresh)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	isWeb := resolveClientType(c) == ClientWeb

	var raw string
	if isWeb {
		cookie, err := c.Cookie(RefreshTokenCookie)
		if err != nil || cookie == "" {
			h.writeServiceError(c, autherrors.ErrTokenNotFound)
			return
		}
		raw = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
		raw = req.RefreshToken
	}

	access, refresh, user, err := h.service.RefreshToken(c.Request.Context(), raw)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWeb {
		h.setSession(c, access, refresh)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", 0)
	h.setCookie(c, RefreshTokenCookie, "", 0)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.GetMe(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
