// Package geo implements the service-region geofence and the distance math
// used by the catalog filters.  The service region covers the DMV metro area
// (Washington D.C., Maryland, Virginia) expressed as a latitude/longitude
// bounding box.  Coordinates outside the box route callers to a dedicated
// "service unavailable" response carrying the nearest supported location.
package geo

import "math"

// Point is a WGS84 coordinate pair.
type Point struct {
    Lat float64 `json:"lat"`
    Lng float64 `json:"lng"`
}

// Service region bounding box: latitudes 38.5..39.5, longitudes -77.7..-76.3.
const (
    RegionMinLat = 38.5
    RegionMaxLat = 39.5
    RegionMinLng = -77.7
    RegionMaxLng = -76.3
)

// FallbackPoint is used when a client supplies no coordinate (geolocation
// denied or unsupported).  It sits in downtown Washington D.C.
var FallbackPoint = Point{Lat: 38.9072, Lng: -77.0369}

// Location is a named place inside the service region, used when suggesting
// the closest supported area to an out-of-region caller.
type Location struct {
    Name string `json:"name"`
    Point
}

// SupportedLocations lists the anchor cities of the service region in no
// particular order.  NearestSupportedLocation scans this slice.
var SupportedLocations = []Location{
    {Name: "Washington, D.C.", Point: Point{Lat: 38.9072, Lng: -77.0369}},
    {Name: "Arlington, VA", Point: Point{Lat: 38.8816, Lng: -77.0910}},
    {Name: "Alexandria, VA", Point: Point{Lat: 38.8048, Lng: -77.0469}},
    {Name: "Bethesda, MD", Point: Point{Lat: 38.9847, Lng: -77.0947}},
    {Name: "Silver Spring, MD", Point: Point{Lat: 38.9907, Lng: -77.0261}},
    {Name: "Annapolis, MD", Point: Point{Lat: 38.9784, Lng: -76.4922}},
}

// InServiceRegion reports whether the point falls inside the supported
// bounding box.  Boundary values count as inside.
func InServiceRegion(p Point) bool {
    return p.Lat >= RegionMinLat && p.Lat <= RegionMaxLat &&
        p.Lng >= RegionMinLng && p.Lng <= RegionMaxLng
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometres using the haversine formula.
func DistanceKm(a, b Point) float64 {
    lat1 := a.Lat * math.Pi / 180
    lat2 := b.Lat * math.Pi / 180
    dLat := (b.Lat - a.Lat) * math.Pi / 180
    dLng := (b.Lng - a.Lng) * math.Pi / 180

    h := math.Sin(dLat/2)*math.Sin(dLat/2) +
        math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
    return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// NearestSupportedLocation returns the supported location closest to p and
// the distance to it in kilometres.  It is used to build the suggestion in
// the out-of-region response.
func NearestSupportedLocation(p Point) (Location, float64) {
    best := SupportedLocations[0]
    bestDist := DistanceKm(p, best.Point)
    for _, loc := range SupportedLocations[1:] {
        if d := DistanceKm(p, loc.Point); d < bestDist {
            best = loc
            bestDist = d
        }
    }
    return best, bestDist
}
