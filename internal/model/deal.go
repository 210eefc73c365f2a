package model

import "time"

// Deal represents a time-bounded discount offer published by a restaurant.
// Prices are stored in cents; DealPriceCents must not exceed
// OriginalPriceCents and EndsAt must be after StartsAt (both validated at
// creation time).  Inventory is tracked by the quantity columns: a deal can
// be claimed while QuantityClaimed < QuantityAvailable.  Coordinates default
// to the owning restaurant's location but may be overridden per deal (pop-up
// locations); nil means the deal has no coordinates of its own.
//
// Fields:
//  ID                 – primary key identifier.
//  RestaurantID       – owning restaurant.
//  Title              – short headline shown in the catalog.
//  Description        – longer free-text description.
//  Cuisine            – cuisine label used by the cuisine filter.
//  DietaryTags        – tags such as "vegan","gluten-free" (comma separated in DB).
//  OriginalPriceCents – price before discount, in cents.
//  DealPriceCents     – discounted price, in cents.
//  Latitude           – deal location latitude (nullable).
//  Longitude          – deal location longitude (nullable).
//  StartsAt           – when the deal becomes claimable.
//  EndsAt             – when the deal stops being claimable.
//  QuantityAvailable  – number of units offered.
//  QuantityClaimed    – number of units already claimed.
//  IsActive           – owner-controlled visibility toggle.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Deal struct {
    ID                 uint64    // deals.id
    RestaurantID       uint64    // deals.restaurant_id
    Title              string    // deals.title
    Description        string    // deals.description
    Cuisine            string    // deals.cuisine
    DietaryTags        []string  // deals.dietary_tags (comma separated)
    OriginalPriceCents uint32    // deals.original_price_cents
    DealPriceCents     uint32    // deals.deal_price_cents
    Latitude           *float64  // deals.latitude (nullable)
    Longitude          *float64  // deals.longitude (nullable)
    StartsAt           time.Time // deals.starts_at
    EndsAt             time.Time // deals.ends_at
    QuantityAvailable  uint32    // deals.quantity_available
    QuantityClaimed    uint32    // deals.quantity_claimed
    IsActive           bool      // deals.is_active
    CreatedAt          time.Time // deals.created_at
    UpdatedAt          time.Time // deals.updated_at
}

// Remaining returns how many units of the deal are still claimable.
func (d *Deal) Remaining() uint32 {
    if d.QuantityClaimed >= d.QuantityAvailable {
        return 0
    }
    return d.QuantityAvailable - d.QuantityClaimed
}
