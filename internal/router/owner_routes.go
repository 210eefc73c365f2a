package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/handler"
    "github.com/instantfork/instantfork-api/internal/middleware"
)

// RegisterOwner registers OWNER-scoped back office endpoints under /v1.
// All routes require a valid JWT and OWNER role.  redeemLimiter throttles
// the redemption endpoints against brute-forced codes.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string, redeemLimiter echo.MiddlewareFunc) {
    g := e.Group(
        "/v1/owner",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("OWNER"),
    )

    // ---- Restaurant profile ----
    g.POST("/restaurant", o.CreateRestaurant)
    g.GET("/restaurant", o.GetMyRestaurant)
    g.PUT("/restaurant", o.UpdateMyRestaurant)
    g.PATCH("/restaurant", o.UpdateMyRestaurant)

    // ---- Deals ----
    g.POST("/deals", o.CreateDeal)
    g.GET("/deals", o.ListMyDeals)
    g.PUT("/deals/:id", o.UpdateDeal)
    g.PATCH("/deals/:id", o.UpdateDeal)
    g.PATCH("/deals/:id/active", o.ToggleDeal)
    g.DELETE("/deals/:id", o.DeleteDeal)

    // ---- Redemption ----
    g.POST("/redeem", o.RedeemByCode, redeemLimiter)
    g.POST("/redeem/qr", o.RedeemByQR, redeemLimiter)
    g.GET("/claims", o.RedemptionFeed)
}
