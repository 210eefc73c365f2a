package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/instantfork/instantfork-api/internal/model"
)

// DealRepo provides data access to the deals table.  Reads used by the
// public catalog run against *sql.DB; the claim path uses the Tx-suffixed
// methods so that the inventory check, the claim insert and the counter
// bump commit or roll back together.
type DealRepo struct {
    db *sql.DB
}

// NewDealRepo returns a new DealRepo bound to the given database.
func NewDealRepo(db *sql.DB) *DealRepo { return &DealRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *DealRepo) DB() *sql.DB { return r.db }

const dealCols = `id, restaurant_id, title, description, cuisine, dietary_tags,
    original_price_cents, deal_price_cents, latitude, longitude,
    starts_at, ends_at, quantity_available, quantity_claimed, is_active,
    created_at, updated_at`

// scanDeal reads one row into a model.Deal, expanding the comma separated
// dietary_tags column and the nullable coordinate pair.
func scanDeal(row interface{ Scan(...interface{}) error }) (model.Deal, error) {
    var (
        d        model.Deal
        tags     string
        lat, lng sql.NullFloat64
    )
    err := row.Scan(&d.ID, &d.RestaurantID, &d.Title, &d.Description, &d.Cuisine, &tags,
        &d.OriginalPriceCents, &d.DealPriceCents, &lat, &lng,
        &d.StartsAt, &d.EndsAt, &d.QuantityAvailable, &d.QuantityClaimed, &d.IsActive,
        &d.CreatedAt, &d.UpdatedAt)
    if err != nil {
        return model.Deal{}, err
    }
    d.DietaryTags = splitTags(tags)
    if lat.Valid {
        v := lat.Float64
        d.Latitude = &v
    }
    if lng.Valid {
        v := lng.Float64
        d.Longitude = &v
    }
    return d, nil
}

// Create inserts a new deal and returns its ID.  Validation of the price
// and time-window rules happens in the handler before this call.
func (r *DealRepo) Create(ctx context.Context, d *model.Deal) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO deals (restaurant_id, title, description, cuisine, dietary_tags,
            original_price_cents, deal_price_cents, latitude, longitude,
            starts_at, ends_at, quantity_available, is_active)
         VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
        d.RestaurantID, d.Title, d.Description, d.Cuisine, joinTags(d.DietaryTags),
        d.OriginalPriceCents, d.DealPriceCents, d.Latitude, d.Longitude,
        d.StartsAt.UTC(), d.EndsAt.UTC(), d.QuantityAvailable, d.IsActive)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByID fetches a deal by primary key.  Missing rows map to
// ErrDealNotFound.
func (r *DealRepo) GetByID(ctx context.Context, id uint64) (model.Deal, error) {
    d, err := scanDeal(r.db.QueryRowContext(ctx,
        `SELECT `+dealCols+` FROM deals WHERE id=? LIMIT 1`, id))
    if err == sql.ErrNoRows {
        return model.Deal{}, ErrDealNotFound
    }
    return d, err
}

// ListActive returns every active deal whose window has not ended, ordered
// by end time so soonest-expiring deals come first.  The catalog filter
// narrows this set further in memory.
func (r *DealRepo) ListActive(ctx context.Context, now time.Time) ([]model.Deal, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+dealCols+` FROM deals WHERE is_active=1 AND ends_at > ? ORDER BY ends_at`,
        now.UTC())
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectDeals(rows)
}

// ListByRestaurant returns all deals belonging to a restaurant, newest
// first.  Used by both the public restaurant page and the owner dashboard;
// the owner sees inactive deals too, so no is_active filter is applied here.
func (r *DealRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Deal, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+dealCols+` FROM deals WHERE restaurant_id=? ORDER BY created_at DESC`,
        restaurantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectDeals(rows)
}

func collectDeals(rows *sql.Rows) ([]model.Deal, error) {
    out := make([]model.Deal, 0)
    for rows.Next() {
        d, err := scanDeal(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites the mutable deal columns for a deal owned by the given
// restaurant.  Updating a deal under another restaurant affects zero rows;
// the caller distinguishes not-found from forbidden the same way
// RestaurantRepo.Update does.
func (r *DealRepo) Update(ctx context.Context, d *model.Deal) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE deals SET title=?, description=?, cuisine=?, dietary_tags=?,
            original_price_cents=?, deal_price_cents=?, latitude=?, longitude=?,
            starts_at=?, ends_at=?, quantity_available=?, is_active=?
         WHERE id=? AND restaurant_id=?`,
        d.Title, d.Description, d.Cuisine, joinTags(d.DietaryTags),
        d.OriginalPriceCents, d.DealPriceCents, d.Latitude, d.Longitude,
        d.StartsAt.UTC(), d.EndsAt.UTC(), d.QuantityAvailable, d.IsActive,
        d.ID, d.RestaurantID)
    if err != nil {
        return err
    }
    return r.mapZeroRows(ctx, res, d.ID)
}

// SetActive flips the visibility toggle on a deal owned by the restaurant.
func (r *DealRepo) SetActive(ctx context.Context, dealID, restaurantID uint64, active bool) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE deals SET is_active=? WHERE id=? AND restaurant_id=?`,
        active, dealID, restaurantID)
    if err != nil {
        return err
    }
    return r.mapZeroRows(ctx, res, dealID)
}

// Delete removes a deal owned by the restaurant.  Deals with outstanding
// active claims cannot be deleted; the caller receives ErrConflict so the
// dashboard can explain that claims must expire or be redeemed first.
func (r *DealRepo) Delete(ctx context.Context, dealID, restaurantID uint64) error {
    var n int
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM claimed_deals WHERE deal_id=? AND status='ACTIVE' AND expires_at > UTC_TIMESTAMP()`,
        dealID).Scan(&n)
    if err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM deals WHERE id=? AND restaurant_id=?`, dealID, restaurantID)
    if err != nil {
        return err
    }
    return r.mapZeroRows(ctx, res, dealID)
}

// mapZeroRows converts a zero-rows-affected write into ErrDealNotFound or
// ErrForbidden depending on whether the deal exists at all.
func (r *DealRepo) mapZeroRows(ctx context.Context, res sql.Result, dealID uint64) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n > 0 {
        return nil
    }
    var exists int
    err = r.db.QueryRowContext(ctx, `SELECT 1 FROM deals WHERE id=? LIMIT 1`, dealID).Scan(&exists)
    if err == sql.ErrNoRows {
        return ErrDealNotFound
    }
    if err != nil {
        return err
    }
    return ErrForbidden
}

// GetForClaimTx loads a deal inside the claim transaction with a row lock so
// two concurrent claims cannot both pass the inventory check.  It returns
// ErrDealNotFound for missing rows; claimability is judged by the caller.
func (r *DealRepo) GetForClaimTx(ctx context.Context, tx *sql.Tx, dealID uint64) (model.Deal, error) {
    d, err := scanDeal(tx.QueryRowContext(ctx,
        `SELECT `+dealCols+` FROM deals WHERE id=? LIMIT 1 FOR UPDATE`, dealID))
    if err == sql.ErrNoRows {
        return model.Deal{}, ErrDealNotFound
    }
    return d, err
}

// IncrementClaimedTx bumps the claimed counter for a deal within the claim
// transaction.  The guard in the WHERE clause keeps the counter from ever
// passing quantity_available even if a caller skips the locked read.
func (r *DealRepo) IncrementClaimedTx(ctx context.Context, tx *sql.Tx, dealID uint64) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE deals SET quantity_claimed = quantity_claimed + 1
         WHERE id=? AND quantity_claimed < quantity_available`, dealID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrDealSoldOut
    }
    return nil
}
