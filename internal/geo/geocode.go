package geo

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"
    "time"
)

// Geocoder resolves a coordinate into a human-readable place name through a
// public reverse-geocoding HTTP service (Nominatim-compatible).  The result
// is display text only; nothing in the claim or redeem paths depends on it.
type Geocoder struct {
    BaseURL string
    Client  *http.Client
}

// NewGeocoder returns a Geocoder talking to the given base URL with a short
// request timeout.  An empty base URL disables lookups (ReverseLookup then
// returns an empty string without error).
func NewGeocoder(baseURL string) *Geocoder {
    return &Geocoder{
        BaseURL: baseURL,
        Client:  &http.Client{Timeout: 4 * time.Second},
    }
}

// reverseResponse mirrors the subset of the Nominatim reverse endpoint
// payload that we consume.
type reverseResponse struct {
    DisplayName string `json:"display_name"`
    Address     struct {
        Neighbourhood string `json:"neighbourhood"`
        Suburb        string `json:"suburb"`
        City          string `json:"city"`
        Town          string `json:"town"`
    } `json:"address"`
}

// ReverseLookup returns a short place name for the coordinate, preferring
// neighbourhood over suburb over city.  Failures are returned to the caller;
// handlers treat them as non-fatal and fall back to coordinates in display
// text.
func (g *Geocoder) ReverseLookup(ctx context.Context, p Point) (string, error) {
    if g.BaseURL == "" {
        return "", nil
    }
    q := url.Values{}
    q.Set("format", "jsonv2")
    q.Set("lat", fmt.Sprintf("%.6f", p.Lat))
    q.Set("lon", fmt.Sprintf("%.6f", p.Lng))

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/reverse?"+q.Encode(), nil)
    if err != nil {
        return "", err
    }
    req.Header.Set("User-Agent", "instantfork-api")

    resp, err := g.Client.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
    }

    var body reverseResponse
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return "", err
    }
    switch {
    case body.Address.Neighbourhood != "":
        return body.Address.Neighbourhood, nil
    case body.Address.Suburb != "":
        return body.Address.Suburb, nil
    case body.Address.City != "":
        return body.Address.City, nil
    case body.Address.Town != "":
        return body.Address.Town, nil
    }
    return body.DisplayName, nil
}
