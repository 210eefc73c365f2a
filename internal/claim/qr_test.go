package claim

import (
    "encoding/json"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestQRRoundTrip(t *testing.T) {
    claimed := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
    expires := claimed.Add(24 * time.Hour)
    p := NewQRPayload("AB23CDFG", "Half-Price Ramen", "Noodle House", 2250, 4500, claimed, expires)

    assert.Equal(t, QRType, p.Type)
    assert.Equal(t, 22.50, p.DealPrice)
    assert.Equal(t, 45.00, p.OriginalPrice)
    assert.Equal(t, "2026-03-01T18:30:00Z", p.ClaimedAt)
    assert.Equal(t, "2026-03-02T18:30:00Z", p.ExpiresAt)

    raw, err := p.Encode()
    require.NoError(t, err)

    got, err := DecodeQR(raw)
    require.NoError(t, err)
    assert.Equal(t, p, got)
}

func TestDecodeQRNormalizesCode(t *testing.T) {
    p := NewQRPayload("AB23CDFG", "Deal", "Spot", 100, 200, time.Now(), time.Now().Add(time.Hour))
    p.ClaimCode = " ab23cdfg "
    raw, err := json.Marshal(p)
    require.NoError(t, err)

    got, err := DecodeQR(raw)
    require.NoError(t, err)
    assert.Equal(t, "AB23CDFG", got.ClaimCode)
}

func TestDecodeQRRejects(t *testing.T) {
    valid := NewQRPayload("AB23CDFG", "Deal", "Spot", 100, 200, time.Now(), time.Now().Add(time.Hour))

    wrongType := valid
    wrongType.Type = "gift_card"
    wrongTypeRaw, _ := json.Marshal(wrongType)

    badCode := valid
    badCode.ClaimCode = "NOPE"
    badCodeRaw, _ := json.Marshal(badCode)

    cases := map[string][]byte{
        "not json":     []byte("not a payload"),
        "empty":        []byte(""),
        "wrong type":   wrongTypeRaw,
        "missing code": []byte(`{"type":"instantfork_deal_claim"}`),
        "bad code":     badCodeRaw,
    }
    for name, raw := range cases {
        _, err := DecodeQR(raw)
        assert.ErrorIs(t, err, ErrInvalidQR, name)
    }
}

func TestQRImageDataURI(t *testing.T) {
    p := NewQRPayload("AB23CDFG", "Deal", "Spot", 100, 200, time.Now(), time.Now().Add(time.Hour))
    uri, err := p.Image(256)
    require.NoError(t, err)
    assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
    assert.Greater(t, len(uri), len("data:image/png;base64,"))
}
