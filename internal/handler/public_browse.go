// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// users can list restaurants, view deals near a location and read a single
// deal.  Owner IDs and other sensitive fields are filtered from responses.

package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/catalog"
    "github.com/instantfork/instantfork-api/internal/geo"
    "github.com/instantfork/instantfork-api/internal/model"
    "github.com/instantfork/instantfork-api/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
    RestaurantRepo *repository.RestaurantRepo
    DealRepo       *repository.DealRepo
    RatingRepo     *repository.RatingRepo
}

// PublicRestaurant represents a restaurant exposed via the public API.
type PublicRestaurant struct {
    ID       uint64  `json:"id"`
    Name     string  `json:"name"`
    Category string  `json:"category"`
    Address  string  `json:"address"`
    Phone    *string `json:"phone,omitempty"`
    Website  *string `json:"website,omitempty"`
    Lat      float64 `json:"lat"`
    Lng      float64 `json:"lng"`
}

// PublicDeal represents a deal in list responses, with the computed fields
// clients render on a card: discount percentage, remaining inventory and,
// when a location was supplied, distance from the user.
type PublicDeal struct {
    ID              uint64   `json:"id"`
    RestaurantID    uint64   `json:"restaurant_id"`
    Title           string   `json:"title"`
    Description     string   `json:"description"`
    Cuisine         string   `json:"cuisine"`
    DietaryTags     []string `json:"dietary_tags,omitempty"`
    OriginalPrice   float64  `json:"original_price"`
    DealPrice       float64  `json:"deal_price"`
    DiscountPercent int      `json:"discount_percent"`
    StartsAt        time.Time `json:"starts_at"`
    EndsAt          time.Time `json:"ends_at"`
    Remaining       uint32   `json:"remaining"`
    DistanceKm      *float64 `json:"distance_km,omitempty"`
}

// PublicRating is one anonymized rating shown on the deal page.
type PublicRating struct {
    Stars     uint8     `json:"stars"`
    Comment   string    `json:"comment,omitempty"`
    CreatedAt time.Time `json:"created_at"`
}

// PublicDealDetail adds rating aggregates to the card fields.
type PublicDealDetail struct {
    PublicDeal
    RatingAvg   float64           `json:"rating_avg"`
    RatingCount int               `json:"rating_count"`
    Ratings     []PublicRating    `json:"ratings,omitempty"`
    Restaurant  *PublicRestaurant `json:"restaurant,omitempty"`
}

func toPublicRestaurant(r model.Restaurant) PublicRestaurant {
    return PublicRestaurant{
        ID:       r.ID,
        Name:     r.Name,
        Category: r.Category,
        Address:  r.Address,
        Phone:    r.Phone,
        Website:  r.Website,
        Lat:      r.Latitude,
        Lng:      r.Longitude,
    }
}

func toPublicDeal(d model.Deal, loc *geo.Point) PublicDeal {
    out := PublicDeal{
        ID:              d.ID,
        RestaurantID:    d.RestaurantID,
        Title:           d.Title,
        Description:     d.Description,
        Cuisine:         d.Cuisine,
        DietaryTags:     d.DietaryTags,
        OriginalPrice:   float64(d.OriginalPriceCents) / 100,
        DealPrice:       float64(d.DealPriceCents) / 100,
        DiscountPercent: catalog.DiscountPercent(d.OriginalPriceCents, d.DealPriceCents),
        StartsAt:        d.StartsAt,
        EndsAt:          d.EndsAt,
        Remaining:       d.Remaining(),
    }
    if loc != nil && d.Latitude != nil && d.Longitude != nil {
        km := geo.DistanceKm(*loc, geo.Point{Lat: *d.Latitude, Lng: *d.Longitude})
        out.DistanceKm = &km
    }
    return out
}

// GetRestaurants returns all restaurants for the public directory.
func (h *PublicHandler) GetRestaurants(c echo.Context) error {
    ctx := c.Request().Context()
    restaurants, err := h.RestaurantRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicRestaurant, 0, len(restaurants))
    for _, r := range restaurants {
        out = append(out, toPublicRestaurant(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRestaurantDeals lists the live deals of one restaurant.  It validates
// that the restaurant exists, then filters its deals down to claimable ones.
func (h *PublicHandler) GetRestaurantDeals(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    rest, err := h.RestaurantRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrRestaurantNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    deals, err := h.DealRepo.ListByRestaurant(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    live := catalog.Filter(deals, catalog.FilterState{}, "", nil, time.Now().UTC())
    out := make([]PublicDeal, 0, len(live))
    for _, d := range live {
        out = append(out, toPublicDeal(d, nil))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "restaurant": toPublicRestaurant(rest),
        "items":      out,
    })
}

// GetDeal returns the detail view of a single deal including its rating
// aggregate and the owning restaurant.
func (h *PublicHandler) GetDeal(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    d, err := h.DealRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrDealNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp := PublicDealDetail{PublicDeal: toPublicDeal(d, nil)}
    if avg, n, err := h.RatingRepo.DealAverage(ctx, id); err == nil {
        resp.RatingAvg = avg
        resp.RatingCount = n
    }
    if ratings, err := h.RatingRepo.ListDealRatings(ctx, id, 10); err == nil {
        for _, r := range ratings {
            pr := PublicRating{Stars: r.Stars, CreatedAt: r.CreatedAt}
            if r.Comment != nil {
                pr.Comment = *r.Comment
            }
            resp.Ratings = append(resp.Ratings, pr)
        }
    }
    if rest, err := h.RestaurantRepo.GetByID(ctx, d.RestaurantID); err == nil {
        pr := toPublicRestaurant(rest)
        resp.Restaurant = &pr
    }
    return c.JSON(http.StatusOK, resp)
}

// GetNearbyDeals returns claimable deals filtered by the query parameters:
//
//   lat, lng          user location; omitted -> downtown fallback point
//   q                 free-text query over title/description/cuisine/tags
//   cuisines          comma separated cuisine allow-list
//   dietary_tags      comma separated dietary allow-list
//   max_price_cents   deal price ceiling
//   max_distance_km   distance ceiling (needs lat/lng)
//   max_hours_left    remaining-time ceiling
//
// A location outside the service region is rejected with 503 and the
// nearest supported city so clients can show a helpful message instead of
// an empty list.
func (h *PublicHandler) GetNearbyDeals(c echo.Context) error {
    ctx := c.Request().Context()
    now := time.Now().UTC()

    loc := geo.FallbackPoint
    if latS, lngS := c.QueryParam("lat"), c.QueryParam("lng"); latS != "" && lngS != "" {
        lat, errLat := strconv.ParseFloat(latS, 64)
        lng, errLng := strconv.ParseFloat(lngS, 64)
        if errLat != nil || errLng != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lat/lng"})
        }
        loc = geo.Point{Lat: lat, Lng: lng}
    }
    if !geo.InServiceRegion(loc) {
        nearest, km := geo.NearestSupportedLocation(loc)
        return c.JSON(http.StatusServiceUnavailable, echo.Map{
            "error":            "outside service region",
            "nearest_location": nearest.Name,
            "distance_km":      km,
        })
    }

    fs := catalog.FilterState{
        Cuisines:    splitParam(c.QueryParam("cuisines")),
        DietaryTags: splitParam(c.QueryParam("dietary_tags")),
    }
    if v := c.QueryParam("max_price_cents"); v != "" {
        n, err := strconv.ParseUint(v, 10, 32)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price_cents"})
        }
        fs.MaxPriceCents = uint32(n)
    }
    if v := c.QueryParam("max_distance_km"); v != "" {
        f, err := strconv.ParseFloat(v, 64)
        if err != nil || f < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_distance_km"})
        }
        fs.MaxDistanceKm = f
    }
    if v := c.QueryParam("max_hours_left"); v != "" {
        f, err := strconv.ParseFloat(v, 64)
        if err != nil || f < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_hours_left"})
        }
        fs.MaxHoursLeft = f
    }

    deals, err := h.DealRepo.ListActive(ctx, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    matched := catalog.Filter(deals, fs, c.QueryParam("q"), &loc, now)
    out := make([]PublicDeal, 0, len(matched))
    for _, d := range matched {
        out = append(out, toPublicDeal(d, &loc))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// GetFeaturedDeals returns the live deals with the steepest discounts,
// capped by the limit parameter (default 10, max 50).
func (h *PublicHandler) GetFeaturedDeals(c echo.Context) error {
    ctx := c.Request().Context()
    now := time.Now().UTC()

    limit := 10
    if v := c.QueryParam("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            limit = n
        }
    }
    if limit > 50 {
        limit = 50
    }

    deals, err := h.DealRepo.ListActive(ctx, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    live := catalog.Filter(deals, catalog.FilterState{}, "", nil, now)
    catalog.SortByDiscountDesc(live)
    if len(live) > limit {
        live = live[:limit]
    }
    out := make([]PublicDeal, 0, len(live))
    for _, d := range live {
        out = append(out, toPublicDeal(d, nil))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// splitParam expands a comma separated query parameter, dropping empties.
func splitParam(s string) []string {
    if strings.TrimSpace(s) == "" {
        return nil
    }
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if t := strings.TrimSpace(p); t != "" {
            out = append(out, t)
        }
    }
    return out
}
