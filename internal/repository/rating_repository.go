package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/instantfork/instantfork-api/internal/model"
)

// RatingRepo persists deal ratings and app ratings.  A user rates a deal at
// most once (unique user_id+deal_id); re-rating the app replaces the
// previous row.
type RatingRepo struct {
    db *sql.DB
}

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// RateDeal records a 1-5 star rating for a deal.  A second rating by the
// same user for the same deal maps to ErrConflict.
func (r *RatingRepo) RateDeal(ctx context.Context, userID, dealID uint64, stars uint8, comment *string) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO deal_ratings (user_id, deal_id, stars, comment) VALUES (?,?,?,?)`,
        userID, dealID, stars, comment)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    return nil
}

// DealAverage returns the average star rating and rating count for a deal.
// Deals with no ratings return (0, 0).
func (r *RatingRepo) DealAverage(ctx context.Context, dealID uint64) (float64, int, error) {
    var (
        avg sql.NullFloat64
        n   int
    )
    err := r.db.QueryRowContext(ctx,
        `SELECT AVG(stars), COUNT(*) FROM deal_ratings WHERE deal_id=?`, dealID).Scan(&avg, &n)
    if err != nil {
        return 0, 0, err
    }
    return avg.Float64, n, nil
}

// ListDealRatings returns the most recent ratings for a deal, newest first,
// capped by limit.
func (r *RatingRepo) ListDealRatings(ctx context.Context, dealID uint64, limit int) ([]model.DealRating, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, user_id, deal_id, stars, comment, created_at
         FROM deal_ratings WHERE deal_id=? ORDER BY created_at DESC LIMIT ?`,
        dealID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.DealRating, 0)
    for rows.Next() {
        var (
            dr      model.DealRating
            comment sql.NullString
        )
        if err := rows.Scan(&dr.ID, &dr.UserID, &dr.DealID, &dr.Stars, &comment, &dr.CreatedAt); err != nil {
            return nil, err
        }
        if comment.Valid {
            s := comment.String
            dr.Comment = &s
        }
        out = append(out, dr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetAppRating returns the user's stored app rating, or sql.ErrNoRows.
func (r *RatingRepo) GetAppRating(ctx context.Context, userID uint64) (model.AppRating, error) {
    var (
        ar       model.AppRating
        feedback sql.NullString
    )
    err := r.db.QueryRowContext(ctx,
        `SELECT user_id, stars, feedback, created_at FROM app_ratings WHERE user_id=? LIMIT 1`,
        userID).Scan(&ar.UserID, &ar.Stars, &feedback, &ar.CreatedAt)
    if err != nil {
        return model.AppRating{}, err
    }
    if feedback.Valid {
        s := feedback.String
        ar.Feedback = &s
    }
    return ar, nil
}

// RateApp upserts the user's rating of the application.
func (r *RatingRepo) RateApp(ctx context.Context, userID uint64, stars uint8, feedback *string) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO app_ratings (user_id, stars, feedback) VALUES (?,?,?)
         ON DUPLICATE KEY UPDATE stars=VALUES(stars), feedback=VALUES(feedback)`,
        userID, stars, feedback)
    return err
}
