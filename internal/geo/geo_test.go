package geo

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestInServiceRegion(t *testing.T) {
    // Downtown D.C.
    assert.True(t, InServiceRegion(Point{Lat: 38.90, Lng: -77.03}))
    // Annapolis, eastern edge of the box.
    assert.True(t, InServiceRegion(Point{Lat: 38.9784, Lng: -76.4922}))
    // Boundary values count as inside.
    assert.True(t, InServiceRegion(Point{Lat: RegionMinLat, Lng: RegionMinLng}))
    assert.True(t, InServiceRegion(Point{Lat: RegionMaxLat, Lng: RegionMaxLng}))

    // New York City.
    assert.False(t, InServiceRegion(Point{Lat: 40.71, Lng: -74.00}))
    // Richmond, VA — south of the box.
    assert.False(t, InServiceRegion(Point{Lat: 37.54, Lng: -77.43}))
    // Just past each boundary.
    assert.False(t, InServiceRegion(Point{Lat: RegionMinLat - 0.01, Lng: -77.0}))
    assert.False(t, InServiceRegion(Point{Lat: 39.0, Lng: RegionMaxLng + 0.01}))
}

func TestFallbackPointInRegion(t *testing.T) {
    assert.True(t, InServiceRegion(FallbackPoint))
}

func TestDistanceKm(t *testing.T) {
    dc := Point{Lat: 38.9072, Lng: -77.0369}

    assert.InDelta(t, 0, DistanceKm(dc, dc), 1e-9)

    // D.C. to Annapolis is roughly 48 km.
    annapolis := Point{Lat: 38.9784, Lng: -76.4922}
    d := DistanceKm(dc, annapolis)
    assert.InDelta(t, 48, d, 3)

    // Symmetric.
    assert.InDelta(t, d, DistanceKm(annapolis, dc), 1e-9)

    // D.C. to NYC is roughly 330 km.
    nyc := Point{Lat: 40.7128, Lng: -74.0060}
    assert.InDelta(t, 330, DistanceKm(dc, nyc), 15)
}

func TestNearestSupportedLocation(t *testing.T) {
    // An out-of-region caller in NYC is pointed at D.C. area anchors; the
    // closest by great-circle distance is one of the Maryland suburbs.
    nyc := Point{Lat: 40.7128, Lng: -74.0060}
    loc, dist := NearestSupportedLocation(nyc)
    assert.Equal(t, "Annapolis, MD", loc.Name)
    assert.Greater(t, dist, 100.0)

    // A caller just west of Arlington gets Arlington.
    loc, dist = NearestSupportedLocation(Point{Lat: 38.88, Lng: -77.20})
    assert.Equal(t, "Arlington, VA", loc.Name)
    assert.Less(t, dist, 15.0)
}
