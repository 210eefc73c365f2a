package claim

import (
    "fmt"
    "time"
)

// Claim status values.  Only StatusActive and StatusRedeemed are persisted;
// StatusExpired is derived at read time from the expiry timestamp and is
// re-checked server-side inside the redemption transaction.  There is no
// transition out of REDEEMED or EXPIRED.
const (
    StatusActive   = "ACTIVE"
    StatusRedeemed = "REDEEMED"
    StatusExpired  = "EXPIRED"
)

// EffectiveStatus maps a stored status and expiry to the status a reader
// should display at the given instant.  A stored ACTIVE claim whose expiry
// has passed reads as EXPIRED; everything else reads as stored.
func EffectiveStatus(stored string, expiresAt, now time.Time) string {
    if stored == StatusActive && !now.Before(expiresAt) {
        return StatusExpired
    }
    return stored
}

// TimeRemaining renders the countdown text shown next to an active claim:
// "2h 5m left", "30m left", or "Expired" once the expiry has passed.
// Remainders are truncated to the minute, so a claim with 30m0s remaining
// and one with 30m59s both render "30m left".
func TimeRemaining(expiresAt, now time.Time) string {
    d := expiresAt.Sub(now)
    if d <= 0 {
        return "Expired"
    }
    mins := int(d / time.Minute)
    h := mins / 60
    m := mins % 60
    if h > 0 {
        return fmt.Sprintf("%dh %dm left", h, m)
    }
    return fmt.Sprintf("%dm left", m)
}
