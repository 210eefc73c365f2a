// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// DealClaimedEvent is published when a claim is successfully issued.  It
// carries enough context for downstream consumers to log, notify or feed
// analytics without querying the primary database.  EventID is a UUID so
// consumers can deduplicate redeliveries.
type DealClaimedEvent struct {
    EventID            string `json:"event_id"`
    ClaimID            uint64 `json:"claim_id"`
    ClaimCode          string `json:"claim_code"`
    UserID             uint64 `json:"user_id"`
    DealID             uint64 `json:"deal_id"`
    DealTitle          string `json:"deal_title"`
    RestaurantID       uint64 `json:"restaurant_id"`
    RestaurantName     string `json:"restaurant_name"`
    DealPriceCents     uint32 `json:"deal_price_cents"`
    OriginalPriceCents uint32 `json:"original_price_cents"`
    ClaimedAt          string `json:"claimed_at"`
    ExpiresAt          string `json:"expires_at"`
}

// DealRedeemedEvent is published when a restaurant redeems a claim at the
// point of sale.
type DealRedeemedEvent struct {
    EventID        string `json:"event_id"`
    ClaimID        uint64 `json:"claim_id"`
    ClaimCode      string `json:"claim_code"`
    RestaurantID   uint64 `json:"restaurant_id"`
    RestaurantName string `json:"restaurant_name"`
    DealTitle      string `json:"deal_title"`
    DealPriceCents uint32 `json:"deal_price_cents"`
    RedeemedAt     string `json:"redeemed_at"`
}
