package router

import (
    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/handler"
    "github.com/instantfork/instantfork-api/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  claimLimiter is the
// rate limiter applied to the claim endpoint; claiming is the only write a
// customer can spam.
func RegisterCustomer(e *echo.Echo, cl *handler.ClaimHandler, pr *handler.ProfileHandler, jwtSecret string, claimLimiter echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("CUSTOMER"),
    )

    // ---- Claims ----
    g.POST("/deals/:id/claim", cl.ClaimDeal, claimLimiter)
    g.GET("/my-claims", cl.MyClaims)
    g.GET("/claims/:id", cl.GetClaim)

    // ---- Favorites ----
    g.POST("/favorites/:id", pr.AddFavorite)
    g.DELETE("/favorites/:id", pr.RemoveFavorite)
    g.GET("/favorites", pr.ListFavorites)

    // ---- Preferences ----
    g.GET("/preferences", pr.GetPreferences)
    g.PUT("/preferences", pr.SavePreferences)

    // ---- Ratings ----
    g.POST("/deals/:id/rate", pr.RateDeal)
    g.GET("/app-rating", pr.GetAppRating)
    g.POST("/app-rating", pr.RateApp)
}
