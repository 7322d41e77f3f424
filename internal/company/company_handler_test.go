package company_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jornada40/internal/company"
	companyerrors "jornada40/internal/company/errors"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyService struct {
	CreateFn  func(ctx context.Context, ownerID string, req company.CreateCompanyRequest) (company.CompanyResponse, error)
	GetAllFn  func(ctx context.Context, ownerID string) ([]company.CompanyResponse, error)
	GetByIDFn func(ctx context.Context, ownerID, id string) (company.CompanyResponse, error)
	UpdateFn  func(ctx context.Context, ownerID, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error)
	PatchFn   func(ctx context.Context, ownerID, id string, req company.PatchCompanyRequest) (company.CompanyResponse, error)
	DeleteFn  func(ctx context.Context, ownerID, id string) error
}

func (f *fakeCompanyService) Create(ctx context.Context, ownerID string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	return f.CreateFn(ctx, ownerID, req)
}
func (f *fakeCompanyService) GetAll(ctx context.Context, ownerID string) ([]company.CompanyResponse, error) {
	return f.GetAllFn(ctx, ownerID)
}
func (f *fakeCompanyService) GetByID(ctx context.Context, ownerID, id string) (company.CompanyResponse, error) {
	return f.GetByIDFn(ctx, ownerID, id)
}
func (f *fakeCompanyService) Update(ctx context.Context, ownerID, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	return f.UpdateFn(ctx, ownerID, id, req)
}
func (f *fakeCompanyService) Patch(ctx context.Context, ownerID, id string, req company.PatchCompanyRequest) (company.CompanyResponse, error) {
	return f.PatchFn(ctx, ownerID, id, req)
}
func (f *fakeCompanyService) Delete(ctx context.Context, ownerID, id string) error {
	return f.DeleteFn(ctx, ownerID, id)
}

func setupRouter(svc company.Service, ownerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	h := company.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", ownerID)
		c.Next()
	})
	r.POST("/companies", h.Create)
	r.GET("/companies", h.GetAll)
	r.GET("/companies/:id", h.GetById)
	r.PUT("/companies/:id", h.Update)
	r.PATCH("/companies/:id", h.Patch)
	r.DELETE("/companies/:id", h.Delete)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCompanyHandler_Create(t *testing.T) {
	ownerID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(_ context.Context, oid string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
				assert.Equal(t, ownerID, oid)
				return company.CompanyResponse{ID: uuid.NewString(), LegalName: req.LegalName, TaxID: "76543210-3"}, nil
			},
		}
		r := setupRouter(svc, ownerID)

		w := httptest.NewRecorder()
		body := `{"legal_name":"Comercial Los Andes SpA","tax_id":"76.543.210-3"}`
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, w.Body.String(), "Comercial Los Andes SpA")
	})

	t.Run("invalid rut is rejected before the service", func(t *testing.T) {
		r := setupRouter(&fakeCompanyService{}, ownerID)

		w := httptest.NewRecorder()
		body := `{"legal_name":"ACME","tax_id":"76543210-4"}`
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
		assert.Equal(t, "tax_id", env.Error.Details.(map[string]any)["field"])
	})

	t.Run("missing legal name", func(t *testing.T) {
		r := setupRouter(&fakeCompanyService{}, ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"tax_id":"76543210-3"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Legal Name is required")
	})

	t.Run("service validation error keeps field details", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(context.Context, string, company.CreateCompanyRequest) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrTaxIDAlreadyExists
			},
		}
		r := setupRouter(svc, ownerID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"legal_name":"ACME","tax_id":"76543210-3"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeValidationFailed, env.Error.Code)
		assert.Equal(t, "tax_id", env.Error.Details.(map[string]any)["field"])
	})
}

func TestCompanyHandler_GetAll(t *testing.T) {
	ownerID := uuid.New().String()
	svc := &fakeCompanyService{
		GetAllFn: func(context.Context, string) ([]company.CompanyResponse, error) {
			return []company.CompanyResponse{
				{LegalName: "Zeta Ltda", TaxID: "11111111-1"},
				{LegalName: "Alfa SpA", TaxID: "22222222-2"},
				{LegalName: "Beta SA", TaxID: "12345678-5"},
			}, nil
		},
	}
	r := setupRouter(svc, ownerID)

	t.Run("sorted and paginated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies?page=1&page_size=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env struct {
			Data []company.CompanyResponse `json:"data"`
			Meta response.PaginationMeta   `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Len(t, env.Data, 2)
		assert.Equal(t, "Alfa SpA", env.Data[0].LegalName)
		assert.Equal(t, int64(3), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("search by rut", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies?q=12345678", nil))

		var env struct {
			Data []company.CompanyResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "Beta SA", env.Data[0].LegalName)
	})
}

func TestCompanyHandler_GetById(t *testing.T) {
	ownerID := uuid.New().String()

	t.Run("not found", func(t *testing.T) {
		svc := &fakeCompanyService{
			GetByIDFn: func(context.Context, string, string) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyNotFound
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc, ownerID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("unexpected error is masked", func(t *testing.T) {
		svc := &fakeCompanyService{
			GetByIDFn: func(context.Context, string, string) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, errors.New("pq: connection reset")
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc, ownerID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestCompanyHandler_Patch(t *testing.T) {
	ownerID := uuid.New().String()
	id := uuid.NewString()
	svc := &fakeCompanyService{
		PatchFn: func(_ context.Context, _ string, gotID string, req company.PatchCompanyRequest) (company.CompanyResponse, error) {
			assert.Equal(t, id, gotID)
			require.NotNil(t, req.City)
			assert.Nil(t, req.LegalName)
			return company.CompanyResponse{ID: gotID, City: *req.City}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/companies/"+id, strings.NewReader(`{"city":"Temuco"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc, ownerID).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Temuco")
}

func TestCompanyHandler_Delete(t *testing.T) {
	ownerID := uuid.New().String()
	svc := &fakeCompanyService{
		DeleteFn: func(context.Context, string, string) error { return nil },
	}

	w := httptest.NewRecorder()
	setupRouter(svc, ownerID).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/companies/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
