package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/instantfork/instantfork-api/internal/handler"
    "github.com/instantfork/instantfork-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check used by load balancers and the
// Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers all authentication-related routes.  Unauthenticated
// operations live under /v1/auth, protected endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts either a bearer token or a refresh_token body, so it
    // sits outside the JWT middleware.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("OWNER", "CUSTOMER"))
    auth.GET("/me", a.Me)
}
