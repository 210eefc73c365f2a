package model

import "time"

// User represents an application user record as stored in the `users` table.
// Each field corresponds to a column in the database.  The json tags are
// omitted here because these structs are primarily used internally by the
// repository layer; handlers define separate response types with appropriate
// JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role (CUSTOMER or OWNER).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// Preferences is the per-user preference bag used to seed default catalog
// filters.  Cuisines and DietaryTags are stored comma separated in the
// `user_preferences` table; zero values mean "no preference".
//
// Fields:
//  UserID         – owner of the preferences (primary key).
//  Cuisines       – preferred cuisine allow-list.
//  DietaryTags    – dietary needs allow-list.
//  MaxDistanceKm  – distance ceiling in kilometres (0 = unlimited).
//  MaxPriceCents  – price ceiling in cents (0 = unlimited).
//  UpdatedAt      – timestamp of last update.
type Preferences struct {
    UserID        uint64    // user_preferences.user_id
    Cuisines      []string  // user_preferences.cuisines (comma separated)
    DietaryTags   []string  // user_preferences.dietary_tags (comma separated)
    MaxDistanceKm float64   // user_preferences.max_distance_km
    MaxPriceCents uint32    // user_preferences.max_price_cents
    UpdatedAt     time.Time // user_preferences.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
