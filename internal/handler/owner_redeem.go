package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/claim"
    "github.com/instantfork/instantfork-api/internal/metrics"
    "github.com/instantfork/instantfork-api/internal/queue"
    "github.com/instantfork/instantfork-api/internal/repository"
    queue_publisher "github.com/instantfork/instantfork-api/internal/service"
)

type redeemCodeReq struct {
    Code string `json:"code"`
}

type redeemQRReq struct {
    QRData string `json:"qr_data"`
}

// RedeemByCode redeems a claim typed in at the counter.  The code is
// normalized before lookup so lowercase or padded input still redeems.
func (h *OwnerHandler) RedeemByCode(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    var req redeemCodeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    code, err := claim.NormalizeCode(req.Code)
    if err != nil {
        metrics.RedemptionFailures.WithLabelValues("bad_code").Inc()
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "malformed claim code"})
    }
    return h.redeem(c, code, rest.ID, rest.Name)
}

// RedeemByQR redeems a claim from scanned QR contents.  The payload is
// decoded and validated, then redemption proceeds exactly as with a typed
// code.
func (h *OwnerHandler) RedeemByQR(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    var req redeemQRReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    payload, err := claim.DecodeQR([]byte(req.QRData))
    if err != nil {
        metrics.RedemptionFailures.WithLabelValues("bad_code").Inc()
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid QR payload"})
    }
    return h.redeem(c, payload.ClaimCode, rest.ID, rest.Name)
}

// redeem runs the redemption transaction and maps each typed failure to its
// HTTP status.  Expiry is re-checked inside the transaction, so a claim that
// still rendered as active on the customer's phone can come back 410 here.
func (h *OwnerHandler) redeem(c echo.Context, code string, restaurantID uint64, restaurantName string) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    now := time.Now().UTC()

    tx, err := h.Claims.DB().BeginTx(ctx, nil)
    if err != nil {
        metrics.RedemptionFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    receipt, err := h.Claims.RedeemTx(ctx, tx, code, restaurantID, now)
    if err != nil {
        switch err {
        case repository.ErrCodeNotFound:
            metrics.RedemptionFailures.WithLabelValues("not_found").Inc()
            return c.JSON(http.StatusNotFound, echo.Map{"error": "claim code not found"})
        case repository.ErrRestaurantMismatch:
            metrics.RedemptionFailures.WithLabelValues("mismatch").Inc()
            return c.JSON(http.StatusForbidden, echo.Map{"error": "claim belongs to another restaurant"})
        case repository.ErrAlreadyRedeemed:
            metrics.RedemptionFailures.WithLabelValues("already_redeemed").Inc()
            return c.JSON(http.StatusConflict, echo.Map{"error": "claim already redeemed"})
        case repository.ErrClaimExpired:
            metrics.RedemptionFailures.WithLabelValues("expired").Inc()
            return c.JSON(http.StatusGone, echo.Map{"error": "claim expired"})
        }
        metrics.RedemptionFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "redeem failed"})
    }
    if err := tx.Commit(); err != nil {
        metrics.RedemptionFailures.WithLabelValues("error").Inc()
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true
    metrics.Redemptions.Inc()

    go func(ev queue.DealRedeemedEvent) {
        pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pcancel()
        if err := queue_publisher.PublishDealRedeemed(pctx, ev); err != nil {
            log.Printf("publish deal.redeemed failed: %v", err)
        }
    }(queue.DealRedeemedEvent{
        EventID:        uuid.NewString(),
        ClaimID:        receipt.ClaimID,
        ClaimCode:      receipt.ClaimCode,
        RestaurantID:   restaurantID,
        RestaurantName: restaurantName,
        DealTitle:      receipt.DealTitle,
        DealPriceCents: receipt.DealPriceCents,
        RedeemedAt:     receipt.RedeemedAt.Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{"receipt": receipt})
}

// RedemptionFeed lists every claim against the caller's restaurant, newest
// first, with effective statuses for the dashboard.
func (h *OwnerHandler) RedemptionFeed(c echo.Context) error {
    rest, ok, echoErr := h.myRestaurant(c)
    if !ok {
        return echoErr
    }
    claims, err := h.Claims.ListByRestaurant(c.Request().Context(), rest.ID)
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
