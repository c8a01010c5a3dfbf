package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/account"
	"resume-builder/internal/generation"
	"resume-builder/internal/lifedata"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/stats"
	"resume-builder/internal/users"
)

const (
	rateGroupAI      = "AI"
	rateGroupDefault = "DEFAULT"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config            config.Config
	Authenticator     auth.Authenticator
	GenerationHandler *generation.Handler
	ResumeHandler     *resumes.Handler
	LifeDataHandler   *lifedata.Handler
	AccountHandler    *account.Handler
	UserHandler       *users.Handler
	StatsHandler      *stats.Handler
	HealthHandler     *health.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Logging(),
		middleware.Auth(deps.Authenticator),
	)

	limit := middleware.RateLimit(middleware.RateLimitConfig{
		GroupFor: rateGroup,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: 5, Burst: 20},
			rateGroupAI:      {Rate: 0.2, Burst: 5},
		},
	})

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterPublicRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api.Group("", limit))
	}

	authed := api.Group("", middleware.RequireUser(), limit)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(authed)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(authed)
	}
	if deps.LifeDataHandler != nil {
		deps.LifeDataHandler.RegisterRoutes(authed)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(authed)
	}

	return r
}

// rateGroup puts the endpoints that call the model in a stricter bucket.
func rateGroup(c *gin.Context) string {
	switch {
	case c.FullPath() == "/api/generate-resume":
		return rateGroupAI
	case c.FullPath() == "/api/experiences" && c.Request.Method == http.MethodPost:
		return rateGroupAI
	default:
		return rateGroupDefault
	}
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
