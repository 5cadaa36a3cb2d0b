package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/config"
	"github.com/fullbootcamp/pos-saas-sub000/internal/handler"
	"github.com/fullbootcamp/pos-saas-sub000/internal/infra"
	"github.com/fullbootcamp/pos-saas-sub000/internal/middleware"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
	"github.com/fullbootcamp/pos-saas-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	accountRepo := repository.NewAccountRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := auth.NewTokenManager(cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLHrs)*time.Hour)

	invoice := func(acct *model.Account, plan *model.Plan, sub *model.Subscription) (string, error) {
		return infra.GenerateInvoicePDF(acct, plan, sub, cfg.PDFStoragePath)
	}

	authSvc := service.NewAuthService(accountRepo, tokens, dispatcher)
	storeSvc := service.NewStoreService(storeRepo)
	subSvc := service.NewSubscriptionService(subRepo, planRepo, storeRepo, accountRepo, rdb, dispatcher, invoice)
	statusSvc := service.NewStatusService(subRepo, planRepo)
	adminSvc := service.NewAdminService(accountRepo, taskRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	statusH := handler.NewStatusHandler(statusSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	subsH := handler.NewSubscriptionsHandler(subSvc)
	dashH := handler.NewDashboardHandler(accountRepo)
	adminH := handler.NewSuperadminHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.NewHealthHandler(db, rdb).Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Gate stage 1: sliding window per client IP across the whole API.
	gateLimiter := middleware.NewRateLimiter(cfg.RateLimitMax,
		time.Duration(cfg.RateLimitWindowMin)*time.Minute)
	api := r.Group("/api", gateLimiter.Middleware())

	api.GET("/plans", subsH.Plans)

	// Auth (public). Login gets a tighter limiter on top of the global one.
	loginLimiter := middleware.NewRateLimiter(20, time.Minute)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", loginLimiter.Middleware(), authH.Login)
		authGroup.POST("/refresh", authH.Refresh)
		authGroup.POST("/verify-email", authH.VerifyEmail)
		authGroup.POST("/resend-verification-email", authH.ResendVerification)
		authGroup.POST("/update-email", authH.UpdateEmail)
	}

	// Protected routes — everything behind the authentication gate.
	gate := middleware.AuthGate(tokens, accountRepo)
	protected := api.Group("", gate)
	{
		protected.GET("/status", statusH.Get)
		protected.POST("/stores", storesH.Create)
		protected.POST("/subscriptions", subsH.Select)
		protected.POST("/subscriptions/update-subscription-end", subsH.UpdateEnd)
		protected.POST("/dashboard", dashH.Bootstrap)

		admin := protected.Group("/superadmin",
			middleware.RequireRole(model.RoleSuperadmin, model.RoleTechLead))
		{
			admin.GET("/users", adminH.ListUsers)
			admin.POST("/users", adminH.CreateUser)
			admin.GET("/tasks", adminH.ListTasks)
			admin.POST("/tasks", adminH.CreateTask)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
