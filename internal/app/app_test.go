package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jornada40/internal/annex"
	"jornada40/internal/app"
	"jornada40/internal/config"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type env struct {
	t    *testing.T
	db   *gorm.DB
	deps app.Dependencies
	api  *gin.Engine
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, app.Migrate(context.Background(), db, zap.NewNop()))

	deps := app.Dependencies{
		Config: &config.Config{
			AppEnv:        "test",
			JWTSecret:     "e2e-secret",
			OutboxEnabled: true,
		},
		DB:         db,
		Logger:     zap.NewNop(),
		Registry:   prometheus.NewRegistry(),
		Capability: annex.Capability{Engine: annex.EngineBuiltin, PDF: true},
	}
	return &env{t: t, db: db, deps: deps, api: app.NewRouter(deps)}
}

func call(t *testing.T, router http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

type session struct {
	userID string
	token  string
}

// signup registers a PERSON customer on the pyme plan and logs in as an
// API client.
func (e *env) signup(email, taxID string) session {
	e.t.Helper()
	w, _ := call(e.t, e.api, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":            email,
		"password":         "secreto123",
		"customer_type":    "PERSON",
		"tax_id":           taxID,
		"plan_id":          "pyme",
		"first_names":      "Carla",
		"paternal_surname": "Muñoz",
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	w, res := call(e.t, e.api, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "secreto123",
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	require.NoError(e.t, json.Unmarshal(res.Data, &data))
	require.NotEmpty(e.t, data.AccessToken)
	return session{userID: data.User.ID, token: data.AccessToken}
}

func (e *env) create(s session, path string, body any) string {
	e.t.Helper()
	w, res := call(e.t, e.api, http.MethodPost, path, s.token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(e.t, json.Unmarshal(res.Data, &created))
	return created.ID
}

func employeeBody(companyID, taxID string) gin.H {
	return gin.H{
		"company_id":  companyID,
		"tax_id":      taxID,
		"first_names": "Ana",
		"last_names":  "Rojas",
		"hire_date":   "2024-01-15",
		"base_salary": 800000,
	}
}

func contractBody(employeeID string) gin.H {
	return gin.H{
		"employee_id":   employeeID,
		"weekly_hours":  42,
		"working_days":  5,
		"schedule_type": "ORDINARY",
		"base_salary":   800000,
		"start_date":    "2024-04-26",
	}
}

func TestTenantIsolation(t *testing.T) {
	e := setupEnv(t)
	alice := e.signup("alice@example.cl", "11111111-1")
	bob := e.signup("bob@example.cl", "22222222-2")

	// a supplied owner is ignored
	w, res := call(t, e.api, http.MethodPost, "/api/v1/companies", alice.token, gin.H{
		"legal_name": "Panadería Alicia SpA",
		"tax_id":     "76543210-3",
		"owner_id":   bob.userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var company struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &company))
	assert.Equal(t, alice.userID, company.OwnerID)

	employeeID := e.create(alice, "/api/v1/employees", employeeBody(company.ID, "12345678-5"))
	contractID := e.create(alice, "/api/v1/contracts", contractBody(employeeID))

	for _, path := range []string{"/api/v1/companies", "/api/v1/employees", "/api/v1/contracts"} {
		w, res := call(t, e.api, http.MethodGet, path, bob.token, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", string(res.Data), path)
	}

	for _, path := range []string{
		"/api/v1/companies/" + company.ID,
		"/api/v1/employees/" + employeeID,
		"/api/v1/contracts/" + contractID,
	} {
		w, _ := call(t, e.api, http.MethodGet, path, bob.token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)

		w, _ = call(t, e.api, http.MethodPatch, path, bob.token, gin.H{})
		assert.Equal(t, http.StatusNotFound, w.Code, path)

		w, _ = call(t, e.api, http.MethodDelete, path, bob.token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)

		w, _ = call(t, e.api, http.MethodGet, path, alice.token, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// bob cannot hang an employee off alice's company
	w, res = call(t, e.api, http.MethodPost, "/api/v1/employees", bob.token, employeeBody(company.ID, "11111111-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, res.Error)
	assert.Equal(t, apperror.CodeValidationFailed, res.Error.Code)

	w, _ = call(t, e.api, http.MethodGet, "/api/v1/contracts/"+contractID+"/annex", bob.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, e.api, http.MethodGet, "/api/v1/companies/not-a-uuid", alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, e.api, http.MethodGet, "/api/v1/companies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmployeeAndContractRules(t *testing.T) {
	e := setupEnv(t)
	alice := e.signup("alice@example.cl", "11111111-1")
	bob := e.signup("bob@example.cl", "22222222-2")

	aliceCo := e.create(alice, "/api/v1/companies", gin.H{"legal_name": "Alicia SpA", "tax_id": "76543210-3"})
	bobCo := e.create(bob, "/api/v1/companies", gin.H{"legal_name": "Roberto Ltda", "tax_id": "7654321-6"})

	employeeID := e.create(alice, "/api/v1/employees", employeeBody(aliceCo, "12345678-5"))

	w, res := call(t, e.api, http.MethodPost, "/api/v1/employees", alice.token, employeeBody(aliceCo, "12.345.678-5"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, res.Error)
	assert.Equal(t, apperror.CodeValidationFailed, res.Error.Code)

	// the same person can work for another company
	e.create(bob, "/api/v1/employees", employeeBody(bobCo, "12345678-5"))

	e.create(alice, "/api/v1/contracts", contractBody(employeeID))
	w, _ = call(t, e.api, http.MethodPost, "/api/v1/contracts", alice.token, contractBody(employeeID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	over := contractBody(employeeID)
	over["weekly_hours"] = 46
	w, _ = call(t, e.api, http.MethodPost, "/api/v1/contracts", alice.token, over)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var pending int64
	require.NoError(t, e.db.Model(&kafka.OutboxEvent{}).Count(&pending).Error)
	assert.Equal(t, int64(5), pending, "two companies, two employees, one contract")
}

func TestDeleteCompanyCascades(t *testing.T) {
	e := setupEnv(t)
	alice := e.signup("alice@example.cl", "11111111-1")

	companyID := e.create(alice, "/api/v1/companies", gin.H{"legal_name": "Alicia SpA", "tax_id": "76543210-3"})
	employeeID := e.create(alice, "/api/v1/employees", employeeBody(companyID, "12345678-5"))
	e.create(alice, "/api/v1/contracts", contractBody(employeeID))

	w, _ := call(t, e.api, http.MethodDelete, "/api/v1/companies/"+companyID, alice.token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, path := range []string{"/api/v1/companies", "/api/v1/employees", "/api/v1/contracts"} {
		w, res := call(t, e.api, http.MethodGet, path, alice.token, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", string(res.Data), path)
	}

	// the owner may start over with a new company
	e.create(alice, "/api/v1/companies", gin.H{"legal_name": "Alicia Dos SpA", "tax_id": "76543210-3"})
}

func TestAnnexDownload(t *testing.T) {
	e := setupEnv(t)
	alice := e.signup("alice@example.cl", "11111111-1")

	companyID := e.create(alice, "/api/v1/companies", gin.H{"legal_name": "Alicia SpA", "tax_id": "76543210-3"})
	employeeID := e.create(alice, "/api/v1/employees", employeeBody(companyID, "12345678-5"))
	contractID := e.create(alice, "/api/v1/contracts", contractBody(employeeID))
	path := "/api/v1/contracts/" + contractID + "/annex"

	w, _ := call(t, e.api, http.MethodGet, path, alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, annex.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	htmlDeps := e.deps
	htmlDeps.Capability = annex.Capability{Engine: annex.EngineNone}
	htmlDeps.Registry = prometheus.NewRegistry()
	htmlAPI := app.NewRouter(htmlDeps)

	w, _ = call(t, htmlAPI, http.MethodGet, path, alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, annex.ContentTypeHTML, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Ana Rojas")
	assert.Contains(t, w.Body.String(), "horas")

	w, _ = call(t, htmlAPI, http.MethodGet, "/api/v1/contracts/"+uuid.NewString()+"/annex", alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerProfileAndPlans(t *testing.T) {
	e := setupEnv(t)
	alice := e.signup("alice@example.cl", "11111111-1")
	e.create(alice, "/api/v1/companies", gin.H{"legal_name": "Alicia SpA", "tax_id": "76543210-3"})

	w, res := call(t, e.api, http.MethodGet, "/api/v1/plans", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var plans []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &plans))
	assert.Len(t, plans, 3)

	w, res = call(t, e.api, http.MethodGet, "/api/v1/customers/me", alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		DisplayName string `json:"display_name"`
		Usage       struct {
			Companies int64 `json:"companies"`
		} `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &me))
	assert.Equal(t, "Carla Muñoz", me.DisplayName)
	assert.Equal(t, int64(1), me.Usage.Companies)

	w, _ = call(t, e.api, http.MethodPatch, "/api/v1/customers/me", alice.token, gin.H{"plan_id": "corporativo"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	e := setupEnv(t)

	w, _ := call(t, e.api, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	e.api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
