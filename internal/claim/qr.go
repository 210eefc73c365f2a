package claim

import (
    "encoding/base64"
    "encoding/json"
    "errors"
    "time"

    qrcode "github.com/skip2/go-qrcode"
)

// QRType is the type tag carried by every claim QR payload.  Decoding
// rejects payloads with any other tag.
const QRType = "instantfork_deal_claim"

// ErrInvalidQR is returned when a scanned payload is not valid JSON, carries
// the wrong type tag, or lacks a claim code.
var ErrInvalidQR = errors.New("invalid QR")

// QRPayload is the JSON shape serialized into the QR image shown on a
// claimed deal and scanned at the restaurant.  Prices are in dollars to
// match what the redemption screen displays.  Timestamps are RFC3339.
type QRPayload struct {
    Type           string  `json:"type"`
    ClaimCode      string  `json:"claim_code"`
    DealTitle      string  `json:"deal_title"`
    RestaurantName string  `json:"restaurant_name"`
    DealPrice      float64 `json:"deal_price"`
    OriginalPrice  float64 `json:"original_price"`
    ExpiresAt      string  `json:"expires_at"`
    ClaimedAt      string  `json:"claimed_at"`
}

// NewQRPayload builds the payload for a claim.  Cent prices are converted to
// dollars for display parity with the receipt.
func NewQRPayload(code, dealTitle, restaurantName string, dealPriceCents, originalPriceCents uint32, claimedAt, expiresAt time.Time) QRPayload {
    return QRPayload{
        Type:           QRType,
        ClaimCode:      code,
        DealTitle:      dealTitle,
        RestaurantName: restaurantName,
        DealPrice:      float64(dealPriceCents) / 100.0,
        OriginalPrice:  float64(originalPriceCents) / 100.0,
        ExpiresAt:      expiresAt.UTC().Format(time.RFC3339),
        ClaimedAt:      claimedAt.UTC().Format(time.RFC3339),
    }
}

// Encode serializes the payload to the JSON bytes embedded in the QR image.
func (p QRPayload) Encode() ([]byte, error) {
    return json.Marshal(p)
}

// DecodeQR parses scanned QR contents.  It validates the type tag and the
// presence of a claim code; any other failure mode collapses to
// ErrInvalidQR because scanner input is untrusted.  The embedded code is
// normalized before being returned inside the payload.
func DecodeQR(data []byte) (QRPayload, error) {
    var p QRPayload
    if err := json.Unmarshal(data, &p); err != nil {
        return QRPayload{}, ErrInvalidQR
    }
    if p.Type != QRType {
        return QRPayload{}, ErrInvalidQR
    }
    code, err := NormalizeCode(p.ClaimCode)
    if err != nil {
        return QRPayload{}, ErrInvalidQR
    }
    p.ClaimCode = code
    return p, nil
}

// Image renders the payload as a PNG of the given edge size in pixels and
// returns it as a data URI suitable for an <img> src attribute.
func (p QRPayload) Image(size int) (string, error) {
    raw, err := p.Encode()
    if err != nil {
        return "", err
    }
    png, err := qrcode.Encode(string(raw), qrcode.Medium, size)
    if err != nil {
        return "", err
    }
    return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
