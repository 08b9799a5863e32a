package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/RMvanderGaag/find-a-buddy/internal/api/handler"
	"github.com/RMvanderGaag/find-a-buddy/internal/api/middleware"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

// Deps holds everything the router needs. Services are wired by the caller.
type Deps struct {
	Auth    ports.AuthService
	Meetups ports.MeetupService
	Users   ports.UserService
	Topics  ports.TopicService

	JWTSecret   string
	AuthLimiter *middleware.RateLimiter
	Checks      map[string]handler.DependencyCheck
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("findabuddy"))

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Use(middleware.RateLimit(d.AuthLimiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))

	topicHandler := handler.NewTopicHandler(d.Topics)
	v1.GET("/topics", topicHandler.List)
	v1.POST("/topics", topicHandler.Create, middleware.RBAC(domain.RoleAdmin))

	userHandler := handler.NewUserHandler(d.Users)
	v1.GET("/users/me", userHandler.Me)
	v1.PUT("/users/me/topics", userHandler.UpdateTopics)

	meetupHandler := handler.NewMeetupHandler(d.Meetups)
	v1.POST("/meetups", meetupHandler.Create)
	v1.GET("/meetups", meetupHandler.List)
	v1.GET("/meetups/invites", meetupHandler.Invites)
	v1.GET("/meetups/:id", meetupHandler.Get)
	v1.POST("/meetups/:id/accept", meetupHandler.Accept)
	v1.POST("/meetups/:id/review", meetupHandler.Review)

	return e
}

// requestLogger writes one structured entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
