package claim

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
    claimed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    expires := claimed.Add(24 * time.Hour)

    assert.Equal(t, StatusActive, EffectiveStatus(StatusActive, expires, claimed))
    assert.Equal(t, StatusActive, EffectiveStatus(StatusActive, expires, expires.Add(-time.Second)))

    // At and past expiry an ACTIVE claim reads as EXPIRED.
    assert.Equal(t, StatusExpired, EffectiveStatus(StatusActive, expires, expires))
    assert.Equal(t, StatusExpired, EffectiveStatus(StatusActive, expires, claimed.Add(25*time.Hour)))

    // REDEEMED never flips to EXPIRED, even past the expiry timestamp.
    assert.Equal(t, StatusRedeemed, EffectiveStatus(StatusRedeemed, expires, claimed.Add(48*time.Hour)))
}

func TestTimeRemaining(t *testing.T) {
    claimed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    expires := claimed.Add(24 * time.Hour)

    // 30 minutes before expiry.
    assert.Equal(t, "30m left", TimeRemaining(expires, claimed.Add(23*time.Hour+30*time.Minute)))

    // Hours and minutes.
    assert.Equal(t, "2h 5m left", TimeRemaining(expires, expires.Add(-(2*time.Hour + 5*time.Minute))))
    assert.Equal(t, "24h 0m left", TimeRemaining(expires, claimed))

    // Truncation: 30m59s still renders as 30m.
    assert.Equal(t, "30m left", TimeRemaining(expires, expires.Add(-(30*time.Minute + 59*time.Second))))

    // Past expiry.
    assert.Equal(t, "Expired", TimeRemaining(expires, expires))
    assert.Equal(t, "Expired", TimeRemaining(expires, claimed.Add(25*time.Hour)))
}
