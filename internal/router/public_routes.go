package router

import (
    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints.  The optional
// middleware (typically the Redis response cache) is applied to the whole
// group; deal listings are read-heavy and tolerate a short cache TTL.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, geoH *handler.GeoHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mw...)

    g.GET("/restaurants", p.GetRestaurants)
    g.GET("/restaurants/:id/deals", p.GetRestaurantDeals)
    g.GET("/deals/:id", p.GetDeal)
    g.GET("/deals", p.GetNearbyDeals)
    g.GET("/deals/featured", p.GetFeaturedDeals)
    g.GET("/search/deals", p.SearchDeals)

    g.GET("/geo/locate", geoH.Locate)
    g.GET("/geo/locations", geoH.SupportedLocations)
}
