package handler

import (
    "context"
    "database/sql"
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/catalog"
    "github.com/instantfork/instantfork-api/internal/claim"
    "github.com/instantfork/instantfork-api/internal/config"
    "github.com/instantfork/instantfork-api/internal/metrics"
    "github.com/instantfork/instantfork-api/internal/model"
    "github.com/instantfork/instantfork-api/internal/queue"
    "github.com/instantfork/instantfork-api/internal/repository"
    queue_publisher "github.com/instantfork/instantfork-api/internal/service"
)

// maxCodeAttempts bounds retries when a generated claim code collides with
// the unique index.  With a 32-char alphabet and 8 positions collisions are
// vanishingly rare; three attempts is plenty.
const maxCodeAttempts = 3

// ClaimHandler serves the customer claim lifecycle: issuing a claim against
// a deal, listing claim history and rendering one claim with its QR code.
type ClaimHandler struct {
    Cfg         config.Config
    Deals       *repository.DealRepo
    Claims      *repository.ClaimRepo
    Restaurants *repository.RestaurantRepo
}

func NewClaimHandler(cfg config.Config, d *repository.DealRepo, cl *repository.ClaimRepo, r *repository.RestaurantRepo) *ClaimHandler {
    return &ClaimHandler{Cfg: cfg, Deals: d, Claims: cl, Restaurants: r}
}

// claimView is the claim representation returned to customers.  Status is
// the effective status (expiry applied), never the raw stored value.
type claimView struct {
    ID              uint64     `json:"id"`
    DealID          uint64     `json:"deal_id"`
    RestaurantID    uint64     `json:"restaurant_id"`
    ClaimCode       string     `json:"claim_code"`
    Status          string     `json:"status"`
    ClaimedAt       time.Time  `json:"claimed_at"`
    ExpiresAt       time.Time  `json:"expires_at"`
    RedeemedAt      *time.Time `json:"redeemed_at,omitempty"`
    DealTitle       string     `json:"deal_title"`
    RestaurantName  string     `json:"restaurant_name"`
    OriginalPrice   float64    `json:"original_price"`
    DealPrice       float64    `json:"deal_price"`
    DiscountPercent int        `json:"discount_percent"`
    TimeRemaining   string     `json:"time_remaining"`
}

func toClaimView(cd model.ClaimedDeal, now time.Time) claimView {
    return claimView{
        ID:              cd.ID,
        DealID:          cd.DealID,
        RestaurantID:    cd.RestaurantID,
        ClaimCode:       cd.ClaimCode,
        Status:          claim.EffectiveStatus(cd.Status, cd.ExpiresAt, now),
        ClaimedAt:       cd.ClaimedAt,
        ExpiresAt:       cd.ExpiresAt,
        RedeemedAt:      cd.RedeemedAt,
        DealTitle:       cd.DealTitle,
        RestaurantName:  cd.RestaurantName,
        OriginalPrice:   float64(cd.OriginalPriceCents) / 100,
        DealPrice:       float64(cd.DealPriceCents) / 100,
        DiscountPercent: catalog.DiscountPercent(cd.OriginalPriceCents, cd.DealPriceCents),
        TimeRemaining:   claim.TimeRemaining(cd.ExpiresAt, now),
    }
}

// ClaimDeal issues a claim for the deal in the path.  The whole operation
// runs in one transaction: the deal row is locked, claimability and
// inventory are checked, the duplicate-claim rule is enforced, the counter
// is bumped and the claim row inserted.  Any failure rolls the counter
// back; there is no code path that hands out a code without a matching row.
func (h *ClaimHandler) ClaimDeal(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    dealID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    now := time.Now().UTC()

    tx, err := h.Deals.DB().BeginTx(ctx, nil)
    if err != nil {
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    d, err := h.Deals.GetForClaimTx(ctx, tx, dealID)
    if err != nil {
        if err == repository.ErrDealNotFound {
            metrics.ClaimFailures.WithLabelValues("not_found").Inc()
            return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
        }
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !d.IsActive || now.Before(d.StartsAt) || !now.Before(d.EndsAt) {
        metrics.ClaimFailures.WithLabelValues("not_claimable").Inc()
        return c.JSON(http.StatusGone, echo.Map{"error": "deal is not claimable"})
    }
    if d.Remaining() == 0 {
        metrics.ClaimFailures.WithLabelValues("sold_out").Inc()
        return c.JSON(http.StatusConflict, echo.Map{"error": "deal sold out"})
    }

    dup, err := h.Claims.HasActiveClaimTx(ctx, tx, uid, dealID)
    if err != nil {
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if dup {
        metrics.ClaimFailures.WithLabelValues("duplicate").Inc()
        return c.JSON(http.StatusConflict, echo.Map{"error": "deal already claimed"})
    }

    if err := h.Deals.IncrementClaimedTx(ctx, tx, dealID); err != nil {
        if err == repository.ErrDealSoldOut {
            metrics.ClaimFailures.WithLabelValues("sold_out").Inc()
            return c.JSON(http.StatusConflict, echo.Map{"error": "deal sold out"})
        }
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    rest, err := h.Restaurants.GetByID(ctx, d.RestaurantID)
    if err != nil {
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    cd := model.ClaimedDeal{
        UserID:             uid,
        DealID:             d.ID,
        RestaurantID:       d.RestaurantID,
        Status:             claim.StatusActive,
        ClaimedAt:          now,
        ExpiresAt:          now.Add(time.Duration(h.Cfg.ClaimTTLHours) * time.Hour),
        DealTitle:          d.Title,
        RestaurantName:     rest.Name,
        OriginalPriceCents: d.OriginalPriceCents,
        DealPriceCents:     d.DealPriceCents,
    }
    for attempt := 0; ; attempt++ {
        code, err := claim.NewCode()
        if err != nil {
            metrics.ClaimFailures.WithLabelValues("error").Inc()
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code generation failed"})
        }
        cd.ClaimCode = code
        err = h.Claims.CreateTx(ctx, tx, &cd)
        if err == nil {
            break
        }
        if repository.IsDuplicateCode(err) && attempt+1 < maxCodeAttempts {
            continue
        }
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create claim failed"})
    }

    if err := tx.Commit(); err != nil {
        metrics.ClaimFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true
    metrics.ClaimsIssued.Inc()

    // Fire-and-forget: a broker outage must not fail the claim.
    go func(ev queue.DealClaimedEvent) {
        pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pcancel()
        if err := queue_publisher.PublishDealClaimed(pctx, ev); err != nil {
            log.Printf("publish deal.claimed failed: %v", err)
        }
    }(queue.DealClaimedEvent{
        EventID:            uuid.NewString(),
        ClaimID:            cd.ID,
        ClaimCode:          cd.ClaimCode,
        UserID:             uid,
        DealID:             d.ID,
        DealTitle:          d.Title,
        RestaurantID:       d.RestaurantID,
        RestaurantName:     rest.Name,
        DealPriceCents:     d.DealPriceCents,
        OriginalPriceCents: d.OriginalPriceCents,
        ClaimedAt:          cd.ClaimedAt.Format(time.RFC3339),
        ExpiresAt:          cd.ExpiresAt.Format(time.RFC3339),
    })

    view := toClaimView(cd, now)
    resp := echo.Map{"claim": view}
    if qr, err := claimQR(cd); err == nil {
        resp["qr"] = qr
    }
    return c.JSON(http.StatusCreated, resp)
}

// MyClaims returns the caller's claim history, newest first, with effective
// statuses and human-friendly countdowns.
func (h *ClaimHandler) MyClaims(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    claims, err := h.Claims.ListByUser(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := time.Now().UTC()
    out := make([]claimView, 0, len(claims))
    for _, cd := range claims {
        out = append(out, toClaimView(cd, now))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetClaim returns one claim owned by the caller together with its QR
// payload and an inline PNG rendering for the redemption screen.
func (h *ClaimHandler) GetClaim(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    claimID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    cd, err := h.Claims.GetByIDForUser(ctx, claimID, uid)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "claim not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := time.Now().UTC()
    resp := echo.Map{"claim": toClaimView(cd, now)}
    if qr, err := claimQR(cd); err == nil {
        resp["qr"] = qr
    } else {
        log.Printf("render claim qr failed: %v", err)
    }
    return c.JSON(http.StatusOK, resp)
}

// claimQR builds the QR payload and a 256px data-URI PNG for a claim.
func claimQR(cd model.ClaimedDeal) (echo.Map, error) {
    payload := claim.NewQRPayload(cd.ClaimCode, cd.DealTitle, cd.RestaurantName,
        cd.DealPriceCents, cd.OriginalPriceCents, cd.ClaimedAt, cd.ExpiresAt)
    png, err := payload.Image(256)
    if err != nil {
        return nil, err
    }
    return echo.Map{"payload": payload, "png": png}, nil
}
