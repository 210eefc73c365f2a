package model

import "time"

// ClaimedDeal records a user's reservation of one unit of a deal, identified
// by a short code presented at the restaurant.  The row carries a
// denormalized snapshot of the deal and restaurant at claim time so history
// and receipts render without re-joining after the deal is edited or
// removed.  The status column only ever stores ACTIVE or REDEEMED; an
// expired claim is an ACTIVE row whose expires_at has passed, computed at
// read time and re-checked server-side during redemption.
//
// Fields:
//  ID                 – primary key identifier.
//  UserID             – user who claimed the deal.
//  DealID             – deal that was claimed.
//  RestaurantID       – restaurant the claim must be redeemed at.
//  ClaimCode          – 8-character uppercase code (unique).
//  Status             – ACTIVE or REDEEMED.
//  ClaimedAt          – when the claim was issued.
//  ExpiresAt          – when the claim stops being redeemable.
//  RedeemedAt         – when the claim was redeemed (nullable).
//  DealTitle          – snapshot of the deal title.
//  RestaurantName     – snapshot of the restaurant name.
//  OriginalPriceCents – snapshot of the pre-discount price.
//  DealPriceCents     – snapshot of the discounted price.
type ClaimedDeal struct {
    ID                 uint64     // claimed_deals.id
    UserID             uint64     // claimed_deals.user_id
    DealID             uint64     // claimed_deals.deal_id
    RestaurantID       uint64     // claimed_deals.restaurant_id
    ClaimCode          string     // claimed_deals.claim_code
    Status             string     // claimed_deals.status
    ClaimedAt          time.Time  // claimed_deals.claimed_at
    ExpiresAt          time.Time  // claimed_deals.expires_at
    RedeemedAt         *time.Time // claimed_deals.redeemed_at (nullable)
    DealTitle          string     // claimed_deals.deal_title
    RestaurantName     string     // claimed_deals.restaurant_name
    OriginalPriceCents uint32     // claimed_deals.original_price_cents
    DealPriceCents     uint32     // claimed_deals.deal_price_cents
}
