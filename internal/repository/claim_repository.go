package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/instantfork/instantfork-api/internal/claim"
    "github.com/instantfork/instantfork-api/internal/model"
)

// ClaimRepo provides data access to the claimed_deals table.  Claim issuing
// and redemption are the two stateful operations of the system and both run
// inside transactions owned by the handler: issuing pairs CreateTx with
// DealRepo.GetForClaimTx/IncrementClaimedTx, redemption is a single RedeemTx
// call.  The status column stores only ACTIVE and REDEEMED; expiry is
// evaluated against expires_at on every read.
type ClaimRepo struct {
    db *sql.DB
}

// NewClaimRepo returns a new ClaimRepo bound to the given database.
func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *ClaimRepo) DB() *sql.DB { return r.db }

const claimCols = `id, user_id, deal_id, restaurant_id, claim_code, status,
    claimed_at, expires_at, redeemed_at,
    deal_title, restaurant_name, original_price_cents, deal_price_cents`

func scanClaim(row interface{ Scan(...interface{}) error }) (model.ClaimedDeal, error) {
    var (
        c        model.ClaimedDeal
        redeemed sql.NullTime
    )
    err := row.Scan(&c.ID, &c.UserID, &c.DealID, &c.RestaurantID, &c.ClaimCode, &c.Status,
        &c.ClaimedAt, &c.ExpiresAt, &redeemed,
        &c.DealTitle, &c.RestaurantName, &c.OriginalPriceCents, &c.DealPriceCents)
    if err != nil {
        return model.ClaimedDeal{}, err
    }
    if redeemed.Valid {
        t := redeemed.Time
        c.RedeemedAt = &t
    }
    return c, nil
}

// HasActiveClaimTx reports whether the user already holds an unexpired
// ACTIVE claim for the deal.  Runs inside the claim transaction so the
// duplicate check and the insert see the same state.
func (r *ClaimRepo) HasActiveClaimTx(ctx context.Context, tx *sql.Tx, userID, dealID uint64) (bool, error) {
    var one int
    err := tx.QueryRowContext(ctx,
        `SELECT 1 FROM claimed_deals
         WHERE user_id=? AND deal_id=? AND status='ACTIVE' AND expires_at > UTC_TIMESTAMP()
         LIMIT 1`,
        userID, dealID).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// CreateTx inserts a new claim within the provided transaction and populates
// the generated ID on the record.  The claim_code column carries a unique
// index; a collision surfaces as a duplicate-key error which the caller
// retries with a fresh code.  IsDuplicateCode recognizes that case.
func (r *ClaimRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.ClaimedDeal) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO claimed_deals
            (user_id, deal_id, restaurant_id, claim_code, status, claimed_at, expires_at,
             deal_title, restaurant_name, original_price_cents, deal_price_cents)
         VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
        c.UserID, c.DealID, c.RestaurantID, c.ClaimCode, c.Status,
        c.ClaimedAt.UTC(), c.ExpiresAt.UTC(),
        c.DealTitle, c.RestaurantName, c.OriginalPriceCents, c.DealPriceCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}

// IsDuplicateCode reports whether err is the MySQL duplicate-key error for
// the claim_code unique index, as opposed to some other constraint.
func IsDuplicateCode(err error) bool {
    if err == nil {
        return false
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "1062") && strings.Contains(msg, "claim_code")
}

// Receipt is the snapshot returned to the restaurant after a successful
// redemption, mirroring what the point-of-sale screen prints.
type Receipt struct {
    ClaimID            uint64    `json:"claim_id"`
    ClaimCode          string    `json:"claim_code"`
    DealTitle          string    `json:"deal_title"`
    RestaurantName     string    `json:"restaurant_name"`
    DealPriceCents     uint32    `json:"deal_price_cents"`
    OriginalPriceCents uint32    `json:"original_price_cents"`
    RedeemedAt         time.Time `json:"redeemed_at"`
}

// RedeemTx atomically consumes a claim: it locks the row by code, verifies
// the claim is redeemable, transitions ACTIVE -> REDEEMED and returns the
// receipt snapshot.  The checks report which one failed:
//   ErrCodeNotFound       – no claim carries the code
//   ErrRestaurantMismatch – restaurantID > 0 and the claim belongs elsewhere
//   ErrAlreadyRedeemed    – status is already REDEEMED (no reverse transition)
//   ErrClaimExpired       – expires_at has passed; expiry is re-checked here
//                           regardless of what any earlier read displayed
// The caller owns the transaction and must commit for the transition to
// stick.
func (r *ClaimRepo) RedeemTx(ctx context.Context, tx *sql.Tx, code string, restaurantID uint64, now time.Time) (Receipt, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+claimCols+` FROM claimed_deals WHERE claim_code=? LIMIT 1 FOR UPDATE`, code)
    c, err := scanClaim(row)
    if err == sql.ErrNoRows {
        return Receipt{}, ErrCodeNotFound
    }
    if err != nil {
        return Receipt{}, err
    }
    if restaurantID != 0 && c.RestaurantID != restaurantID {
        return Receipt{}, ErrRestaurantMismatch
    }
    if c.Status == claim.StatusRedeemed {
        return Receipt{}, ErrAlreadyRedeemed
    }
    if !now.Before(c.ExpiresAt) {
        return Receipt{}, ErrClaimExpired
    }
    redeemedAt := now.UTC()
    if _, err := tx.ExecContext(ctx,
        `UPDATE claimed_deals SET status='REDEEMED', redeemed_at=? WHERE id=?`,
        redeemedAt, c.ID); err != nil {
        return Receipt{}, err
    }
    return Receipt{
        ClaimID:            c.ID,
        ClaimCode:          c.ClaimCode,
        DealTitle:          c.DealTitle,
        RestaurantName:     c.RestaurantName,
        DealPriceCents:     c.DealPriceCents,
        OriginalPriceCents: c.OriginalPriceCents,
        RedeemedAt:         redeemedAt,
    }, nil
}

// GetByIDForUser returns a single claim belonging to the user.  Ownership is
// enforced in the WHERE clause, so a claim owned by someone else reads as
// sql.ErrNoRows just like a missing one.
func (r *ClaimRepo) GetByIDForUser(ctx context.Context, claimID, userID uint64) (model.ClaimedDeal, error) {
    return scanClaim(r.db.QueryRowContext(ctx,
        `SELECT `+claimCols+` FROM claimed_deals WHERE id=? AND user_id=? LIMIT 1`,
        claimID, userID))
}

// ListByUser returns the user's claim history, newest first.  Callers apply
// claim.EffectiveStatus before display so borderline-expired rows render
// consistently with the redeem-side check.
func (r *ClaimRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ClaimedDeal, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+claimCols+` FROM claimed_deals WHERE user_id=? ORDER BY claimed_at DESC`,
        userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectClaims(rows)
}

// ListByRestaurant returns all claims against a restaurant, newest first,
// for the owner's redemption feed.
func (r *ClaimRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.ClaimedDeal, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+claimCols+` FROM claimed_deals WHERE restaurant_id=? ORDER BY claimed_at DESC`,
        restaurantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectClaims(rows)
}

func collectClaims(rows *sql.Rows) ([]model.ClaimedDeal, error) {
    out := make([]model.ClaimedDeal, 0)
    for rows.Next() {
        c, err := scanClaim(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
