package model

import "time"

// Restaurant represents a participating restaurant operated by an owner
// account.  Each owner operates at most one restaurant; the owner_id column
// carries a unique index to enforce this.  The latitude/longitude pair places
// the restaurant on the map and anchors distance filtering for its deals.
// This struct corresponds to a row in the `restaurants` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the restaurant owner (unique).
//  Name      – display name of the restaurant.
//  Category  – cuisine category (e.g. "mexican", "thai").
//  Address   – street address used for display.
//  Phone     – contact phone number (nullable).
//  Website   – contact website URL (nullable).
//  Latitude  – geographic latitude of the venue.
//  Longitude – geographic longitude of the venue.
//  CreatedAt – timestamp when the restaurant was created.
//  UpdatedAt – timestamp of last update.
type Restaurant struct {
    ID        uint64    // restaurants.id
    OwnerID   uint64    // restaurants.owner_id
    Name      string    // restaurants.name
    Category  string    // restaurants.category
    Address   string    // restaurants.address
    Phone     *string   // restaurants.phone (nullable)
    Website   *string   // restaurants.website (nullable)
    Latitude  float64   // restaurants.latitude
    Longitude float64   // restaurants.longitude
    CreatedAt time.Time // restaurants.created_at
    UpdatedAt time.Time // restaurants.updated_at
}
