package api

import (
	"database/sql"
	"log/slog"
	stdhttp "net/http"

	intconfig "amabackend/internal/config"
	h "amabackend/internal/http/handlers"
	"amabackend/internal/http/middleware"
	"amabackend/internal/query"
	"amabackend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options overrides pieces of the router that are not derived from Env.
type Options struct {
	DB     *sql.DB
	Mailer services.Mailer
	// AuthPerMinute is the per-IP request budget of /api/authorization routes.
	AuthPerMinute int
}

func NewRouter(env intconfig.Env, opts Options) (*gin.Engine, error) {
	dialect, err := query.ParseDialect(env.DBDriver)
	if err != nil {
		return nil, err
	}
	tokens := services.Tokens{Secret: []byte(env.EncKey)}
	api := h.Handler{
		DB:       opts.DB,
		Dialect:  dialect,
		PageSize: env.DefaultPageSize,
		Tokens:   tokens,
		SiteURL:  env.SiteURL,
		Mailer:   opts.Mailer,
	}
	perMinute := opts.AuthPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.Metrics(),
		middleware.CORS(env.CORSOrigins),
		middleware.Session(tokens),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "err", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", api.Root)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes := r.Group("/api")
	{
		routes.GET("/health", api.Health)
		routes.GET("/db-check", api.DBCheck)

		auth := routes.Group("/authorization")
		auth.Use(middleware.NewIPRateLimiter(perMinute, perMinute/3+1).Middleware())
		auth.POST("/login", api.Login)
		auth.POST("/register", api.Register)
		auth.POST("/forget-password", api.ForgetPassword)
		auth.POST("/reset-password", api.ResetPassword)

		ama := routes.Group("/ama")
		ama.POST("", api.CreateAma)
		ama.GET("", api.ListAma)
		ama.POST("/search", api.SearchAma)
		ama.GET("/export", api.ExportAma)
		ama.GET("/:id", api.GetAma)
		ama.PUT("/:id", api.UpdateAma)
		ama.DELETE("/:id", api.DeleteAma)

		routes.GET("/users", api.ListUsers)
	}

	return r, nil
}
