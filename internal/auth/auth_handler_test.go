package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jornada40/internal/auth"
	"jornada40/internal/auth/token"
	"jornada40/internal/shared/apperror"

	autherrors "jornada40/internal/auth/errors"
	authMock "jornada40/internal/auth/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	h := auth.NewHandler(svc, token.NewManager("test-secret"), true)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, h.Me)
	return r
}

func postJSON(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandler_Login(t *testing.T) {
	body := `{"email":"ana@example.cl","password":"secreto123"}`

	t.Run("web client gets cookies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().Login(gomock.Any(), "ana@example.cl", "secreto123").
			Return("access-token", "refresh-token", auth.AuthResponse{ID: "user-1", Email: "ana@example.cl"}, nil)

		w := postJSON(setupAuthRouter(svc), "/auth/login", body, map[string]string{"X-Client-Type": "web"})

		assert.Equal(t, http.StatusOK, w.Code)
		access := cookieByName(w, "access_token")
		require.NotNil(t, access)
		assert.Equal(t, "access-token", access.Value)
		assert.True(t, access.HttpOnly)
		assert.True(t, access.Secure)
		assert.Equal(t, int(token.DefaultAccessTTL.Seconds()), access.MaxAge)
		require.NotNil(t, cookieByName(w, "refresh_token"))
		assert.Contains(t, w.Body.String(), `"email":"ana@example.cl"`)
	})

	t.Run("api client gets tokens in the body only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("access-token", "refresh-token", auth.AuthResponse{ID: "user-1"}, nil)

		w := postJSON(setupAuthRouter(svc), "/auth/login", body, map[string]string{"User-Agent": "curl/8.0"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), "refresh-token")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		w := postJSON(setupAuthRouter(svc), "/auth/login", body, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
	})
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				assert.Equal(t, "LEGAL_ENTITY", req.CustomerType)
				return auth.AuthResponse{ID: "user-1", CompanyID: "company-1"}, nil
			})

		w := postJSON(setupAuthRouter(svc), "/auth/register", `{
			"email":"rrhh@losandes.cl","password":"secreto123","customer_type":"LEGAL_ENTITY",
			"tax_id":"76.543.210-3","plan_id":"pyme","business_name":"Los Andes SpA"}`, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "company-1")
	})

	t.Run("bad rut never reaches the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)

		w := postJSON(setupAuthRouter(svc), "/auth/register", `{
			"email":"ana@example.cl","password":"secreto123","customer_type":"PERSON",
			"tax_id":"12345678-9","plan_id":"pyme"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "tax_id")
	})

	t.Run("short password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)

		w := postJSON(setupAuthRouter(svc), "/auth/register", `{
			"email":"ana@example.cl","password":"corta","customer_type":"PERSON",
			"tax_id":"12345678-5","plan_id":"pyme"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered)

		w := postJSON(setupAuthRouter(svc), "/auth/register", `{
			"email":"ana@example.cl","password":"secreto123","customer_type":"PERSON",
			"tax_id":"12345678-5","plan_id":"pyme","first_names":"Ana","paternal_surname":"Rojas"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidationFailed)
		assert.Contains(t, w.Body.String(), `"field":"email"`)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	t.Run("web client without cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)

		w := postJSON(setupAuthRouter(svc), "/auth/refresh", `{}`, map[string]string{"X-Client-Type": "WEB"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("web client rotates cookies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().RefreshToken(gomock.Any(), "old-refresh").
			Return("new-access", "new-refresh", auth.AuthResponse{ID: "user-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "WEB")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})
		w := httptest.NewRecorder()
		setupAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, cookieByName(w, "refresh_token"))
		assert.Equal(t, "new-refresh", cookieByName(w, "refresh_token").Value)
	})

	t.Run("mobile client sends the body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := authMock.NewMockService(ctrl)
		svc.EXPECT().RefreshToken(gomock.Any(), "old-refresh").
			Return("", "", auth.AuthResponse{}, autherrors.ErrInvalidRefreshToken)

		w := postJSON(setupAuthRouter(svc), "/auth/refresh", `{"refresh_token":"old-refresh"}`,
			map[string]string{"X-Client-Type": "MOBILE"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_LogoutAndMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	r := setupAuthRouter(svc)

	w := postJSON(r, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	access := cookieByName(w, "access_token")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Less(t, access.MaxAge, 0)

	svc.EXPECT().GetMe(gomock.Any(), "user-1").Return(&auth.AuthResponse{ID: "user-1", Email: "ana@example.cl"}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.cl")
}
