package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/infrastructure/auth"
	"github.com/inkasso/backend/internal/infrastructure/logger"
	"github.com/inkasso/backend/internal/interfaces/http/handler"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

// Config wires the handlers and cross-cutting middleware into an engine
type Config struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	UserRepo       identity.UserRepository

	CORS        middleware.CORSConfig
	MaxBodySize int64

	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Tenants     *handler.TenantHandler
	Debtors     *handler.DebtorHandler
	Cases       *handler.CaseHandler
	Assignments *handler.AssignmentHandler
}

// New builds the HTTP engine with all routes registered
func New(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	if cfg.Logger != nil {
		engine.Use(logger.GinMiddleware(cfg.Logger))
		engine.Use(logger.Recovery(cfg.Logger))
	} else {
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	// Liveness and readiness stay outside the API group and outside auth
	if cfg.System != nil {
		engine.GET("/health", cfg.System.Health)
		engine.GET("/ready", cfg.System.Ready)
	}

	api := engine.Group("/api/v1")

	// Token issuance is the only unauthenticated API surface
	if cfg.Auth != nil {
		public := api.Group("/auth")
		public.POST("/login", cfg.Auth.Login)
		public.POST("/refresh", cfg.Auth.RefreshToken)
	}

	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.TokenBlacklist = cfg.TokenBlacklist
	jwtCfg.SkipPaths = nil
	jwtCfg.Logger = cfg.Logger

	secured := api.Group("")
	secured.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	secured.Use(middleware.ActorMiddleware(cfg.UserRepo, cfg.Logger))

	if cfg.Auth != nil {
		authGroup := secured.Group("/auth")
		authGroup.POST("/logout", cfg.Auth.Logout)
		authGroup.GET("/me", cfg.Auth.GetCurrentUser)
		authGroup.PUT("/password", cfg.Auth.ChangePassword)
	}

	if cfg.Tenants != nil {
		tenants := secured.Group("/tenants")
		tenants.GET("", cfg.Tenants.List)
		tenants.POST("", cfg.Tenants.Create)
		tenants.GET("/:id", cfg.Tenants.GetByID)
		tenants.PUT("/:id", cfg.Tenants.Update)
		tenants.DELETE("/:id", cfg.Tenants.Delete)

		if cfg.Assignments != nil {
			tenants.GET("/:id/agents", cfg.Assignments.ListForTenant)
			tenants.POST("/:id/agents", cfg.Assignments.Assign)
			tenants.DELETE("/:id/agents/:agentId", cfg.Assignments.Unassign)
		}
	}

	if cfg.Debtors != nil {
		debtors := secured.Group("/debtors")
		debtors.GET("", cfg.Debtors.List)
		debtors.GET("/:id", cfg.Debtors.GetByID)
	}

	if cfg.Cases != nil {
		cases := secured.Group("/cases")
		cases.GET("", cfg.Cases.List)
		cases.GET("/:id", cfg.Cases.GetByID)
		cases.POST("/:id/advance", cfg.Cases.Advance)
		cases.GET("/:id/history", cfg.Cases.History)
	}

	return engine
}
