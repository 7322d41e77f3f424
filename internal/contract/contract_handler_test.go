package contract_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jornada40/internal/contract"
	contracterrors "jornada40/internal/contract/errors"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContractService struct {
	CreateFn  func(ctx context.Context, ownerID string, req contract.CreateContractRequest) (contract.ContractResponse, error)
	GetAllFn  func(ctx context.Context, ownerID string, filter contract.ContractFilter) ([]contract.ContractResponse, error)
	GetByIDFn func(ctx context.Context, ownerID, id string) (contract.ContractResponse, error)
	UpdateFn  func(ctx context.Context, ownerID, id string, req contract.UpdateContractRequest) (contract.ContractResponse, error)
	PatchFn   func(ctx context.Context, ownerID, id string, req contract.PatchContractRequest) (contract.ContractResponse, error)
	DeleteFn  func(ctx context.Context, ownerID, id string) error
}

func (f *fakeContractService) Create(ctx context.Context, ownerID string, req contract.CreateContractRequest) (contract.ContractResponse, error) {
	return f.CreateFn(ctx, ownerID, req)
}
func (f *fakeContractService) GetAll(ctx context.Context, ownerID string, filter contract.ContractFilter) ([]contract.ContractResponse, error) {
	return f.GetAllFn(ctx, ownerID, filter)
}
func (f *fakeContractService) GetByID(ctx context.Context, ownerID, id string) (contract.ContractResponse, error) {
	return f.GetByIDFn(ctx, ownerID, id)
}
func (f *fakeContractService) Update(ctx context.Context, ownerID, id string, req contract.UpdateContractRequest) (contract.ContractResponse, error) {
	return f.UpdateFn(ctx, ownerID, id, req)
}
func (f *fakeContractService) Patch(ctx context.Context, ownerID, id string, req contract.PatchContractRequest) (contract.ContractResponse, error) {
	return f.PatchFn(ctx, ownerID, id, req)
}
func (f *fakeContractService) Delete(ctx context.Context, ownerID, id string) error {
	return f.DeleteFn(ctx, ownerID, id)
}

func setupRouter(svc contract.Service, ownerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	h := contract.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", ownerID)
		c.Next()
	})
	r.POST("/contracts", h.Create)
	r.GET("/contracts", h.GetAll)
	r.GET("/contracts/:id", h.GetById)
	r.PUT("/contracts/:id", h.Update)
	r.PATCH("/contracts/:id", h.Patch)
	r.DELETE("/contracts/:id", h.Delete)
	return r
}

func sendJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestContractHandler_Create(t *testing.T) {
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeContractService{
			CreateFn: func(_ context.Context, oid string, req contract.CreateContractRequest) (contract.ContractResponse, error) {
				assert.Equal(t, ownerID, oid)
				assert.Nil(t, req.WeeklyHours)
				require.NotNil(t, req.BaseSalary)
				assert.Equal(t, int64(650000), *req.BaseSalary)
				return contract.ContractResponse{ID: uuid.NewString(), EmployeeID: req.EmployeeID, WeeklyHours: 44}, nil
			},
		}
		body := `{"employee_id":"` + employeeID + `","base_salary":650000,"start_date":"2025-03-01"}`

		w := sendJSON(setupRouter(svc, ownerID), http.MethodPost, "/contracts", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"weekly_hours":44`)
	})

	t.Run("zero salary is accepted", func(t *testing.T) {
		svc := &fakeContractService{
			CreateFn: func(_ context.Context, _ string, req contract.CreateContractRequest) (contract.ContractResponse, error) {
				assert.Equal(t, int64(0), *req.BaseSalary)
				return contract.ContractResponse{}, nil
			},
		}
		body := `{"employee_id":"` + employeeID + `","base_salary":0,"start_date":"2025-03-01"}`

		w := sendJSON(setupRouter(svc, ownerID), http.MethodPost, "/contracts", body)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing salary", func(t *testing.T) {
		body := `{"employee_id":"` + employeeID + `","start_date":"2025-03-01"}`

		w := sendJSON(setupRouter(&fakeContractService{}, ownerID), http.MethodPost, "/contracts", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
		assert.Equal(t, "base_salary", env.Error.Details.(map[string]any)["field"])
	})

	t.Run("unknown schedule type", func(t *testing.T) {
		body := `{"employee_id":"` + employeeID + `","base_salary":1,"start_date":"2025-03-01","schedule_type":"NIGHT"}`

		w := sendJSON(setupRouter(&fakeContractService{}, ownerID), http.MethodPost, "/contracts", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "oneof", decodeEnvelope(t, w).Error.Details.(map[string]any)["rule"])
	})

	t.Run("second contract", func(t *testing.T) {
		svc := &fakeContractService{
			CreateFn: func(context.Context, string, contract.CreateContractRequest) (contract.ContractResponse, error) {
				return contract.ContractResponse{}, contracterrors.ErrContractAlreadyExists
			},
		}
		body := `{"employee_id":"` + employeeID + `","base_salary":1,"start_date":"2025-03-01"}`

		w := sendJSON(setupRouter(svc, ownerID), http.MethodPost, "/contracts", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeValidationFailed, env.Error.Code)
		assert.Equal(t, "employee_id", env.Error.Details.(map[string]any)["field"])
	})
}

func TestContractHandler_GetAll(t *testing.T) {
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	svc := &fakeContractService{
		GetAllFn: func(_ context.Context, _ string, filter contract.ContractFilter) ([]contract.ContractResponse, error) {
			assert.Equal(t, employeeID, filter.EmployeeID)
			return []contract.ContractResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc, ownerID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contracts?employee_id="+employeeID+"&page=2&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []contract.ContractResponse `json:"data"`
		Meta response.PaginationMeta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "c", env.Data[0].ID)
	assert.Equal(t, int64(3), env.Meta.Total)
}

func TestContractHandler_GetById(t *testing.T) {
	svc := &fakeContractService{
		GetByIDFn: func(context.Context, string, string) (contract.ContractResponse, error) {
			return contract.ContractResponse{}, contracterrors.ErrContractNotFound
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc, uuid.NewString()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contracts/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decodeEnvelope(t, w).Error.Code)
}

func TestContractHandler_Patch(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeContractService{
		PatchFn: func(_ context.Context, _ string, gotID string, req contract.PatchContractRequest) (contract.ContractResponse, error) {
			assert.Equal(t, id, gotID)
			require.NotNil(t, req.WorkingDays)
			assert.Nil(t, req.ScheduleType)
			return contract.ContractResponse{ID: gotID, WorkingDays: *req.WorkingDays}, nil
		},
	}

	w := sendJSON(setupRouter(svc, uuid.NewString()), http.MethodPatch, "/contracts/"+id, `{"working_days":6}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"working_days":6`)

	w = sendJSON(setupRouter(svc, uuid.NewString()), http.MethodPatch, "/contracts/"+id, `{"working_days":8}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractHandler_Delete(t *testing.T) {
	svc := &fakeContractService{
		DeleteFn: func(context.Context, string, string) error { return nil },
	}

	w := httptest.NewRecorder()
	setupRouter(svc, uuid.NewString()).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/contracts/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
