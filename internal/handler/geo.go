package handler

import (
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/geo"
)

// GeoHandler answers location questions for the client: whether a point is
// inside the service region and, when possible, a human-readable area name
// from the reverse geocoder.
type GeoHandler struct {
    Geocoder *geo.Geocoder
}

func NewGeoHandler(g *geo.Geocoder) *GeoHandler { return &GeoHandler{Geocoder: g} }

// Locate resolves lat/lng query parameters.  Missing coordinates fall back
// to the downtown point.  Out-of-region points are still answered with 200;
// clients use in_region plus the nearest supported city to decide what to
// show.
func (h *GeoHandler) Locate(c echo.Context) error {
    p := geo.FallbackPoint
    usedFallback := true
    if latS, lngS := c.QueryParam("lat"), c.QueryParam("lng"); latS != "" && lngS != "" {
        lat, errLat := strconv.ParseFloat(latS, 64)
        lng, errLng := strconv.ParseFloat(lngS, 64)
        if errLat != nil || errLng != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lat/lng"})
        }
        p = geo.Point{Lat: lat, Lng: lng}
        usedFallback = false
    }

    resp := echo.Map{
        "point":         p,
        "used_fallback": usedFallback,
        "in_region":     geo.InServiceRegion(p),
    }
    if !geo.InServiceRegion(p) {
        nearest, km := geo.NearestSupportedLocation(p)
        resp["nearest_location"] = nearest.Name
        resp["distance_km"] = km
        return c.JSON(http.StatusOK, resp)
    }
    if h.Geocoder != nil {
        area, err := h.Geocoder.ReverseLookup(c.Request().Context(), p)
        if err != nil {
            log.Printf("reverse geocode failed: %v", err)
        } else if area != "" {
            resp["area"] = area
        }
    }
    return c.JSON(http.StatusOK, resp)
}

// SupportedLocations lists the cities the service covers.
func (h *GeoHandler) SupportedLocations(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"items": geo.SupportedLocations})
}
