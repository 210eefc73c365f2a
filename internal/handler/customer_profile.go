package handler

import (
    "database/sql"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/repository"
)

// ProfileHandler serves per-user data: favorites, saved filter preferences
// and ratings.
type ProfileHandler struct {
    Users     *repository.UserRepo
    Favorites *repository.FavoriteRepo
    Ratings   *repository.RatingRepo
    Deals     *repository.DealRepo
}

func NewProfileHandler(u *repository.UserRepo, f *repository.FavoriteRepo, r *repository.RatingRepo, d *repository.DealRepo) *ProfileHandler {
    return &ProfileHandler{Users: u, Favorites: f, Ratings: r, Deals: d}
}

// AddFavorite marks a deal as a favorite.  Favoriting twice is a no-op.
func (h *ProfileHandler) AddFavorite(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    if _, err := h.Deals.GetByID(ctx, dealID); err != nil {
        if err == repository.ErrDealNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.Favorites.Add(ctx, uid, dealID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite unmarks a favorite.  Removing a missing one is a no-op.
func (h *ProfileHandler) RemoveFavorite(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Favorites.Remove(c.Request().Context(), uid, dealID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ListFavorites returns the caller's favorited deals in the order they were
// saved.  Deals deleted since favoriting are silently skipped.
func (h *ProfileHandler) ListFavorites(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    ids, err := h.Favorites.ListDealIDs(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicDeal, 0, len(ids))
    for _, id := range ids {
        d, err := h.Deals.GetByID(ctx, id)
        if err != nil {
            if err == repository.ErrDealNotFound {
                continue
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        out = append(out, toPublicDeal(d, nil))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPreferences returns the caller's saved filter preferences, or an empty
// set when none have been saved yet.
func (h *ProfileHandler) GetPreferences(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    p, err := h.Users.GetPreferences(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, p)
}

type preferencesReq struct {
    Cuisines      []string `json:"cuisines"`
    DietaryTags   []string `json:"dietary_tags"`
    MaxDistanceKm float64  `json:"max_distance_km"`
    MaxPriceCents uint32   `json:"max_price_cents"`
}

// SavePreferences upserts the caller's filter preferences so the client can
// restore them on the next session.
func (h *ProfileHandler) SavePreferences(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req preferencesReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.MaxDistanceKm < 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "max_distance_km must be >= 0"})
    }
    p := repository.Preferences{
        UserID:        uid,
        Cuisines:      req.Cuisines,
        DietaryTags:   req.DietaryTags,
        MaxDistanceKm: req.MaxDistanceKm,
        MaxPriceCents: req.MaxPriceCents,
    }
    if err := h.Users.SavePreferences(c.Request().Context(), p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}

type rateDealReq struct {
    Stars   uint8  `json:"stars"`
    Comment string `json:"comment"`
}

// RateDeal records a 1-5 star rating for a deal.  A user rates a deal once.
func (h *ProfileHandler) RateDeal(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req rateDealReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Stars < 1 || req.Stars > 5 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "stars must be between 1 and 5"})
    }
    ctx := c.Request().Context()
    if _, err := h.Deals.GetByID(ctx, dealID); err != nil {
        if err == repository.ErrDealNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var comment *string
    if t := strings.TrimSpace(req.Comment); t != "" {
        comment = &t
    }
    if err := h.Ratings.RateDeal(ctx, uid, dealID, req.Stars, comment); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "deal already rated"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    avg, n, err := h.Ratings.DealAverage(ctx, dealID)
    if err != nil {
        return c.NoContent(http.StatusCreated)
    }
    return c.JSON(http.StatusCreated, echo.Map{"rating_avg": avg, "rating_count": n})
}

// GetAppRating returns the caller's stored app rating, if any.
func (h *ProfileHandler) GetAppRating(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ar, err := h.Ratings.GetAppRating(c.Request().Context(), uid)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no app rating"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp := echo.Map{"stars": ar.Stars, "created_at": ar.CreatedAt}
    if ar.Feedback != nil {
        resp["feedback"] = *ar.Feedback
    }
    return c.JSON(http.StatusOK, resp)
}

type rateAppReq struct {
    Stars    uint8  `json:"stars"`
    Feedback string `json:"feedback"`
}

// RateApp upserts the caller's rating of the application itself.
func (h *ProfileHandler) RateApp(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req rateAppReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Stars < 1 || req.Stars > 5 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "stars must be between 1 and 5"})
    }
    var feedback *string
    if t := strings.TrimSpace(req.Feedback); t != "" {
        feedback = &t
    }
    if err := h.Ratings.RateApp(c.Request().Context(), uid, req.Stars, feedback); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}
