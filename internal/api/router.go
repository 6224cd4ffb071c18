package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sunshine-recruitment/portal/internal/api/handler"
	"github.com/sunshine-recruitment/portal/internal/api/middleware"
	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
	"github.com/sunshine-recruitment/portal/internal/infrastructure/http/handlers"
)

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Sessions ports.SessionVerifier
	Auth     ports.AuthService
	Jobs     ports.JobService
	Audit    ports.AuditService
	Tickets  ports.TicketService
	Stories  ports.StoryService
	Contact  ports.ContactService

	Cookie         handler.CookieConfig
	UploadDir      string
	UploadURL      string
	MaxUploadBytes int64

	// Readiness lists the dependencies checked by /health/ready.
	Readiness []handlers.Dependency

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("latency_us", v.Latency.Microseconds()).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	activityHandler := handler.NewActivityHandler(deps.Audit)
	helpHandler := handler.NewHelpHandler(deps.Tickets)
	storyHandler := handler.NewStoryHandler(deps.Stories)
	contactHandler := handler.NewContactHandler(deps.Contact, deps.MaxUploadBytes)

	session := middleware.Auth(deps.Sessions, deps.Cookie.Name)
	admin := middleware.RBAC(domain.RoleAdmin)

	g := e.Group("/api")

	// --- Auth ---
	g.POST("/auth/login", authHandler.Login)
	g.POST("/auth/logout", authHandler.Logout)
	g.GET("/auth/me", authHandler.Me, session)
	g.GET("/auth/profile", authHandler.Profile, session)
	g.PUT("/auth/profile", authHandler.UpdateProfile, session)
	g.PUT("/auth/change-password", authHandler.ChangePassword, session)
	g.POST("/auth/register", authHandler.Register, session, admin)
	g.POST("/auth/admin-signup", authHandler.AdminSignup)

	// --- Jobs ---
	g.GET("/jobs", jobHandler.List)
	g.GET("/jobs/:id", jobHandler.Get)
	g.POST("/jobs", jobHandler.Create, session, admin)
	g.PUT("/jobs/:id", jobHandler.Update, session, admin)
	g.DELETE("/jobs/:id", jobHandler.Delete, session, admin)

	// --- Back office ---
	g.GET("/admin/activity", activityHandler.List, session)
	g.POST("/admin/activity", activityHandler.Create, session)
	g.GET("/admin/help", helpHandler.List, session)
	g.POST("/admin/help", helpHandler.Submit, session)
	g.GET("/admin/help/:id", helpHandler.Get, session)
	g.GET("/admin/success-stories", storyHandler.ListAll, session, admin)
	g.POST("/admin/success-stories", storyHandler.Create, session, admin)

	// --- Public ---
	g.GET("/success-stories", storyHandler.ListPublic)
	g.POST("/contact", contactHandler.Contact)
	g.POST("/apply", contactHandler.Apply)

	if deps.UploadDir != "" && deps.UploadURL != "" {
		e.Static(deps.UploadURL, deps.UploadDir)
	}

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
