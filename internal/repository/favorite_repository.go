package repository

import (
    "context"
    "database/sql"
)

// FavoriteRepo manages the favorites join table (user_id, deal_id).  Adding
// an existing favorite and removing a missing one are both no-ops so the
// heart toggle in the client never errors on a double tap.
type FavoriteRepo struct {
    db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add marks a deal as a favorite of the user.  Duplicate inserts are
// absorbed by INSERT IGNORE against the composite primary key.
func (r *FavoriteRepo) Add(ctx context.Context, userID, dealID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT IGNORE INTO favorites (user_id, deal_id) VALUES (?,?)`, userID, dealID)
    return err
}

// Remove unmarks a favorite.  Removing a row that does not exist is not an
// error.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, dealID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `DELETE FROM favorites WHERE user_id=? AND deal_id=?`, userID, dealID)
    return err
}

// ListDealIDs returns the set of deal IDs the user has favorited, in
// insertion order.
func (r *FavoriteRepo) ListDealIDs(ctx context.Context, userID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT deal_id FROM favorites WHERE user_id=? ORDER BY created_at`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make([]uint64, 0)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}
