package customer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jornada40/internal/customer"
	customererrors "jornada40/internal/customer/errors"
	"jornada40/internal/shared/apperror"

	customerMock "jornada40/internal/customer/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc customer.Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	h := customer.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/customers/me", h.GetMe)
	r.PATCH("/customers/me", h.PatchMe)
	return r
}

func TestCustomerHandler_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := customerMock.NewMockService(ctrl)
	userID := uuid.NewString()

	svc.EXPECT().GetMe(gomock.Any(), userID).Return(customer.CustomerResponse{
		UserID:      userID,
		DisplayName: "Los Andes SpA",
		Plan:        &customer.PlanSummary{ID: "pyme"},
	}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc, userID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Los Andes SpA")
	assert.Contains(t, w.Body.String(), `"id":"pyme"`)
}

func TestCustomerHandler_PatchMe(t *testing.T) {
	userID := uuid.NewString()

	t.Run("plan too small", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := customerMock.NewMockService(ctrl)
		svc.EXPECT().PatchMe(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req customer.PatchCustomerRequest) (customer.CustomerResponse, error) {
				assert.Equal(t, "semilla", *req.PlanID)
				assert.Nil(t, req.Phone)
				return customer.CustomerResponse{}, customererrors.ErrPlanTooSmall
			})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/customers/me", strings.NewReader(`{"plan_id":"semilla"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, userID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidationFailed)
		assert.Contains(t, w.Body.String(), "plan_id")
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := customerMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/customers/me", strings.NewReader(`{"phone":`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, userID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
