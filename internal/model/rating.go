package model

import "time"

// DealRating stores a 1-5 star rating a user left for a deal after claiming
// it.  A user may rate a given deal once; the (user_id, deal_id) pair is
// unique.
type DealRating struct {
    ID        uint64    // deal_ratings.id
    UserID    uint64    // deal_ratings.user_id
    DealID    uint64    // deal_ratings.deal_id
    Stars     uint8     // deal_ratings.stars (1-5)
    Comment   *string   // deal_ratings.comment (nullable)
    CreatedAt time.Time // deal_ratings.created_at
}

// AppRating stores a user's rating of the application itself, captured from
// the in-app prompt.  One row per user; resubmitting replaces the row.
type AppRating struct {
    UserID    uint64    // app_ratings.user_id
    Stars     uint8     // app_ratings.stars (1-5)
    Feedback  *string   // app_ratings.feedback (nullable)
    CreatedAt time.Time // app_ratings.created_at
}
