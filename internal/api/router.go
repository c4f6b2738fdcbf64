package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/userhub/user-portal/internal/api/handler"
	"github.com/userhub/user-portal/internal/api/middleware"
	"github.com/userhub/user-portal/internal/core/ports"
)

// RouterDeps carries everything the router needs, constructed once at
// startup and threaded through explicitly — no package-level state.
type RouterDeps struct {
	UserService ports.UserService
	AuthService ports.AuthService
	Store       handler.Pinger
	SessionKey  []byte
	JWTSecret   []byte
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(session.Middleware(sessions.NewCookieStore(deps.SessionKey)))
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- HTML pages ---
	pageHandler := handler.NewPageHandler(deps.AuthService, deps.UserService)
	e.GET("/", pageHandler.Index)
	e.GET("/login", pageHandler.LoginForm)
	e.POST("/login", pageHandler.Login)
	e.GET("/logout", pageHandler.Logout)

	// --- User API ---
	userHandler := handler.NewUserHandler(deps.UserService)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	gate := middleware.Auth(deps.JWTSecret)

	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	// Reads are gated; create and delete are open.
	apiGroup.GET("/user", userHandler.List, gate)
	apiGroup.GET("/user/:id", userHandler.Get, gate)
	apiGroup.POST("/user", userHandler.Create)
	apiGroup.DELETE("/user/:id", userHandler.Delete)

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
