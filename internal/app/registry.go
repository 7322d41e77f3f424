package app

import (
	"jornada40/internal/annex"
	"jornada40/internal/auth"
	"jornada40/internal/auth/token"
	"jornada40/internal/company"
	"jornada40/internal/config"
	"jornada40/internal/contract"
	"jornada40/internal/customer"
	"jornada40/internal/employee"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/middleware"
	"jornada40/internal/plan"
	"jornada40/internal/shared/counter"
	"jornada40/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the router is built from.
// Redis and the metrics registry are optional.
type Dependencies struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Logger     *zap.Logger
	Registry   *prometheus.Registry
	Capability annex.Capability
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.L()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(deps.Logger))
	router.Use(middleware.NewHTTPMetrics(deps.Registry).Middleware())

	router.GET("/healthz", healthz(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	registerModules(router.Group("/api/v1"), deps)
	return router
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}

func registerModules(api *gin.RouterGroup, deps Dependencies) {
	db, rdb, logger, cfg := deps.DB, deps.Redis, deps.Logger, deps.Config
	tokens := token.NewManager(cfg.JWTSecret)

	// --- Repositories ---
	authRepo := auth.NewRepository(db)
	companyRepo := company.NewRepository(db)
	contractRepo := contract.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	planRepo := plan.NewRepository(db)

	var outboxRepo kafka.OutboxRepository
	if cfg.OutboxEnabled {
		outboxRepo = kafka.NewOutboxRepository(db)
	}

	// --- Services ---
	planService := plan.NewService(planRepo, rdb, logger)
	authService := auth.NewService(auth.Deps{
		DB:        db,
		Users:     authRepo,
		Customers: customerRepo,
		Companies: companyRepo,
		Plans:     planService,
		Outbox:    outboxRepo,
		Tokens:    tokens,
	}, logger)
	customerService := customer.NewService(db, customerRepo, planService, logger)
	companyService := company.NewServiceWithOutbox(db, companyRepo, outboxRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	contractService := contract.NewServiceWithOutbox(db, contractRepo, outboxRepo, logger)
	annexService := annex.NewService(contractRepo, deps.Capability, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, tokens, cfg.IsProduction(), logger)
	planHandler := plan.NewHandler(planService, logger)
	customerHandler := customer.NewHandler(customerService, logger)
	companyHandler := company.NewHandler(companyService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	contractHandler := contract.NewHandler(contractService, logger)
	annexHandler := annex.NewHandler(annexService, logger)

	// --- Routes Registration ---
	auth.RegisterRoutes(api, authHandler, tokens)
	plan.RegisterRoutes(api, planHandler)
	customer.RegisterRoutes(api, customerHandler, tokens, logger)
	company.RegisterRoutes(api, companyHandler, tokens, rdb, logger)
	employee.RegisterRoutes(api, employeeHandler, tokens, rdb, logger)
	contracts := contract.RegisterRoutes(api, contractHandler, tokens, rdb, logger)
	annex.RegisterRoutes(contracts, annexHandler)
}
