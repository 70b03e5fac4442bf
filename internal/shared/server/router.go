package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/account"
	googleauth "businessconnect-backend/internal/auth"
	"businessconnect-backend/internal/cvs"
	"businessconnect-backend/internal/exports"
	"businessconnect-backend/internal/formations"
	"businessconnect-backend/internal/importer"
	"businessconnect-backend/internal/jobs"
	"businessconnect-backend/internal/shared/config"
	"businessconnect-backend/internal/shared/metrics"
	"businessconnect-backend/internal/shared/server/middleware"
	"businessconnect-backend/internal/shared/server/respond"
	"businessconnect-backend/internal/subscriptions"
	"businessconnect-backend/internal/users"
)

// RouterDeps carries the constructed handlers. Bootstrap owns
// dependency construction; the router only wires middleware and routes.
type RouterDeps struct {
	Config               config.Config
	JobsHandler          *jobs.Handler
	FormationsHandler    *formations.Handler
	CVsHandler           *cvs.Handler
	ExportsHandler       *exports.Handler
	ImporterHandler      *importer.Handler
	SubscriptionsHandler *subscriptions.Handler
	AccountHandler       *account.Handler
	UsersHandler         *users.Handler
	GoogleAuth           *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"EXPORT":  {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/cvs/:id/exports" {
					return "EXPORT"
				}
				return ""
			},
		}),
		middleware.Auth(cfg.Env),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api.Group("/users"))
	}
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(api)
	}
	if deps.FormationsHandler != nil {
		deps.FormationsHandler.RegisterRoutes(api)
	}
	if deps.CVsHandler != nil {
		deps.CVsHandler.RegisterRoutes(api)
	}
	if deps.ExportsHandler != nil {
		deps.ExportsHandler.RegisterRoutes(api)
	}
	if deps.ImporterHandler != nil {
		deps.ImporterHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.SubscriptionsHandler != nil {
		deps.SubscriptionsHandler.RegisterRoutes(api)
		deps.SubscriptionsHandler.RegisterWebhook(api)
	}

	if cfg.Env == "dev" || cfg.Env == "local" {
		dev := api.Group("/dev")
		dev.GET("/metrics", metrics.Handler())
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
