package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/model"
    "github.com/instantfork/instantfork-api/internal/repository"
)

type dealReq struct {
    Title              string   `json:"title"`
    Description        string   `json:"description"`
    Cuisine            string   `json:"cuisine"`
    DietaryTags        []string `json:"dietary_tags"`
    OriginalPriceCents uint32   `json:"original_price_cents"`
    DealPriceCents     uint32   `json:"deal_price_cents"`
    Lat                *float64 `json:"lat"`
    Lng                *float64 `json:"lng"`
    StartsAt           string   `json:"starts_at"` // RFC3339
    EndsAt             string   `json:"ends_at"`   // RFC3339
    QuantityAvailable  uint32   `json:"quantity_available"`
    IsActive           *bool    `json:"is_active"`
}

// validate enforces the deal rules: required title and cuisine, a positive
// original price, a deal price no higher than the original, a well-ordered
// time window and at least one unit of inventory.
func (req *dealReq) validate() (start, end time.Time, msg string, ok bool) {
    req.Title = strings.TrimSpace(req.Title)
    req.Cuisine = strings.TrimSpace(req.Cuisine)
    if req.Title == "" {
        return start, end, "title required", false
    }
    if req.Cuisine == "" {
        return start, end, "cuisine required", false
    }
    if req.OriginalPriceCents == 0 {
        return start, end, "original_price_cents must be > 0", false
    }
    if req.DealPriceCents > req.OriginalPriceCents {
        return start, end, "deal_price_cents must not exceed original_price_cents", false
    }
    var err error
    if start, err = time.Parse(time.RFC3339, req.StartsAt); err != nil {
        return start, end, "starts_at must be RFC3339", false
    }
    if end, err = time.Parse(time.RFC3339, req.EndsAt); err != nil {
        return start, end, "ends_at must be RFC3339", false
    }
    if !end.After(start) {
        return start, end, "ends_at must be after starts_at", false
    }
    if req.QuantityAvailable == 0 {
        return start, end, "quantity_available must be >= 1", false
    }
    if (req.Lat == nil) != (req.Lng == nil) {
        return start, end, "lat and lng must be supplied together", false
    }
    return start, end, "", true
}

func (req *dealReq) apply(d *model.Deal, start, end time.Time, rest model.Restaurant) {
    d.Title = req.Title
    d.Description = strings.TrimSpace(req.Description)
    d.Cuisine = req.Cuisine
    d.DietaryTags = req.DietaryTags
    d.OriginalPriceCents = req.OriginalPriceCents
    d.DealPriceCents = req.DealPriceCents
    d.StartsAt = start.UTC()
    d.EndsAt = end.UTC()
    d.QuantityAvailable = req.QuantityAvailable
    if req.IsActive != nil {
        d.IsActive = *req.IsActive
    }
    // Deals without explicit coordinates inherit the restaurant's location.
    if req.Lat != nil && req.Lng != nil {
        d.Latitude, d.Longitude = req.Lat, req.Lng
    } else if d.Latitude == nil || d.Longitude == nil {
        lat, lng := rest.Latitude, rest.Longitude
        d.Latitude, d.Longitude = &lat, &lng
    }
}

// CreateDeal publishes a new deal under the caller's restaurant.
func (h *OwnerHandler) CreateDeal(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    var req dealReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    start, end, msg, valid := req.validate()
    if !valid {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
    }

    d := model.Deal{RestaurantID: rest.ID, IsActive: true}
    req.apply(&d, start, end, rest)

    id, err := h.Deals.Create(c.Request().Context(), &d)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create deal failed"})
    }
    d.ID = id
    return c.JSON(http.StatusCreated, toPublicDeal(d, nil))
}

// ListMyDeals returns every deal of the caller's restaurant, including
// inactive and ended ones, for the dashboard.
func (h *OwnerHandler) ListMyDeals(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    deals, err := h.Deals.ListByRestaurant(c.Request().Context(), rest.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type ownerDeal struct {
        PublicDeal
        QuantityAvailable uint32 `json:"quantity_available"`
        QuantityClaimed   uint32 `json:"quantity_claimed"`
        IsActive          bool   `json:"is_active"`
    }
    out := make([]ownerDeal, 0, len(deals))
    for _, d := range deals {
        out = append(out, ownerDeal{
            PublicDeal:        toPublicDeal(d, nil),
            QuantityAvailable: d.QuantityAvailable,
            QuantityClaimed:   d.QuantityClaimed,
            IsActive:          d.IsActive,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateDeal rewrites a deal owned by the caller's restaurant.
func (h *OwnerHandler) UpdateDeal(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req dealReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    start, end, msg, valid := req.validate()
    if !valid {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
    }

    ctx := c.Request().Context()
    d, err := h.Deals.GetByID(ctx, dealID)
    if err != nil {
        if err == repository.ErrDealNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if d.RestaurantID != rest.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    req.apply(&d, start, end, rest)
    if err := h.Deals.Update(ctx, &d); err != nil {
        switch err {
        case repository.ErrDealNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update deal failed"})
    }
    return c.JSON(http.StatusOK, toPublicDeal(d, nil))
}

type toggleReq struct {
    IsActive bool `json:"is_active"`
}

// ToggleDeal flips a deal's visibility without touching its other fields.
func (h *OwnerHandler) ToggleDeal(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req toggleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := h.Deals.SetActive(c.Request().Context(), dealID, rest.ID, req.IsActive); err != nil {
        switch err {
        case repository.ErrDealNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle deal failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": dealID, "is_active": req.IsActive})
}

// DeleteDeal removes a deal.  Deals with outstanding active claims cannot
// be deleted; customers holding codes must be able to redeem them.
func (h *OwnerHandler) DeleteDeal(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Deals.Delete(c.Request().Context(), dealID, rest.ID); err != nil {
        switch err {
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "deal has active claims"})
        case repository.ErrDealNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete deal failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
