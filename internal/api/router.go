package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/reelhouse/movie-catalog/internal/api/handler"
	"github.com/reelhouse/movie-catalog/internal/api/middleware"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
	_ "github.com/reelhouse/movie-catalog/internal/docs"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/http/handlers"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth       ports.AuthService
	Users      ports.UserService
	Catalog    ports.CatalogService
	References ports.ReferenceService
}

// Options carries the router's ambient dependencies.
type Options struct {
	Logger zerolog.Logger
	// Readiness backs GET /health/ready. The route is omitted when nil.
	Readiness *handlers.HealthDependenciesHandler
	// Registry receives the HTTP request metrics and is served on /metrics.
	// Defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(opts.Logger))

	promMW := echoprometheus.MiddlewareConfig{Namespace: "movie_catalog"}
	promHandler := echoprometheus.HandlerConfig{}
	if opts.Registry != nil {
		promMW.Registerer = opts.Registry
		promHandler.Gatherer = opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMW))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	movieHandler := handler.NewMovieHandler(svc.Catalog)
	referenceHandler := handler.NewReferenceHandler(svc.References)
	userHandler := handler.NewUserHandler(svc.Users)

	requireAuth := middleware.Auth(svc.Auth)
	adminOnly := middleware.AdminOnly()

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	// --- Movie routes ---
	movies := api.Group("/movies", requireAuth)
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.GET("/:id/tmdb", movieHandler.GetEnriched)
	movies.POST("", movieHandler.Create, adminOnly)
	movies.PUT("/:id", movieHandler.Update, adminOnly)
	movies.DELETE("/:id", movieHandler.Delete, adminOnly)

	// --- Reference routes (read-only) ---
	api.GET("/directors", referenceHandler.ListDirectors, requireAuth)
	api.GET("/directors/:id", referenceHandler.GetDirector, requireAuth)
	api.GET("/actors", referenceHandler.ListActors, requireAuth)
	api.GET("/actors/:id", referenceHandler.GetActor, requireAuth)
	api.GET("/genres", referenceHandler.ListGenres, requireAuth)
	api.GET("/genres/:id", referenceHandler.GetGenre, requireAuth)

	// --- User administration ---
	users := api.Group("/users", requireAuth, adminOnly)
	users.GET("", userHandler.List)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health checks, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if opts.Readiness != nil {
		e.GET("/health/ready", opts.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
