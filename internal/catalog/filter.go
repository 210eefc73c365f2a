// Package catalog implements the pure deal filtering and sorting logic
// applied to an already-loaded deal list.  Nothing here touches the
// database; handlers load active deals through the repository layer and run
// them through Filter.  The filter is stable: surviving deals keep their
// input order.
package catalog

import (
    "math"
    "sort"
    "strings"
    "time"

    "github.com/instantfork/instantfork-api/internal/geo"
    "github.com/instantfork/instantfork-api/internal/model"
)

// FilterState describes the active predicates.  Zero values disable the
// corresponding predicate: an empty allow-list admits every deal, a zero
// ceiling means unlimited.
type FilterState struct {
    Cuisines      []string // cuisine allow-list, matched case-insensitively
    DietaryTags   []string // dietary allow-list; a deal passes when any tag matches
    MaxPriceCents uint32   // deal price ceiling in cents
    MaxDistanceKm float64  // distance ceiling; requires a user location
    MaxHoursLeft  float64  // remaining-time ceiling in hours
}

// Filter returns the subsequence of deals satisfying every active predicate
// at the given instant.  Deals that have ended, not yet started, been
// toggled inactive or sold out are always excluded.  A deal without
// coordinates is excluded only when the distance predicate is active.  The
// free-text query matches title, description, cuisine or any dietary tag,
// case-insensitively.
func Filter(deals []model.Deal, fs FilterState, query string, loc *geo.Point, now time.Time) []model.Deal {
    query = strings.ToLower(strings.TrimSpace(query))
    out := make([]model.Deal, 0, len(deals))
    for _, d := range deals {
        if !claimable(&d, now) {
            continue
        }
        if fs.MaxPriceCents > 0 && d.DealPriceCents > fs.MaxPriceCents {
            continue
        }
        if fs.MaxHoursLeft > 0 {
            hoursLeft := d.EndsAt.Sub(now).Hours()
            if hoursLeft > fs.MaxHoursLeft {
                continue
            }
        }
        if fs.MaxDistanceKm > 0 && loc != nil {
            if d.Latitude == nil || d.Longitude == nil {
                continue // no coordinates, cannot satisfy an active distance filter
            }
            dist := geo.DistanceKm(*loc, geo.Point{Lat: *d.Latitude, Lng: *d.Longitude})
            if dist > fs.MaxDistanceKm {
                continue
            }
        }
        if len(fs.Cuisines) > 0 && !containsFold(fs.Cuisines, d.Cuisine) {
            continue
        }
        if len(fs.DietaryTags) > 0 && !anyTagMatch(fs.DietaryTags, d.DietaryTags) {
            continue
        }
        if query != "" && !matchesQuery(&d, query) {
            continue
        }
        out = append(out, d)
    }
    return out
}

// claimable reports whether the deal is live at the given instant: active,
// inside its [start, end) window and not sold out.
func claimable(d *model.Deal, now time.Time) bool {
    if !d.IsActive {
        return false
    }
    if now.Before(d.StartsAt) || !now.Before(d.EndsAt) {
        return false
    }
    return d.Remaining() > 0
}

// matchesQuery reports whether any searched field contains the lower-cased
// query string.
func matchesQuery(d *model.Deal, query string) bool {
    if strings.Contains(strings.ToLower(d.Title), query) {
        return true
    }
    if strings.Contains(strings.ToLower(d.Description), query) {
        return true
    }
    if strings.Contains(strings.ToLower(d.Cuisine), query) {
        return true
    }
    for _, t := range d.DietaryTags {
        if strings.Contains(strings.ToLower(t), query) {
            return true
        }
    }
    return false
}

func containsFold(list []string, v string) bool {
    for _, s := range list {
        if strings.EqualFold(s, v) {
            return true
        }
    }
    return false
}

func anyTagMatch(wanted, tags []string) bool {
    for _, w := range wanted {
        if containsFold(tags, w) {
            return true
        }
    }
    return false
}

// DiscountPercent returns the rounded percentage saved between the original
// and deal price: round((orig-deal)/orig*100).  A zero original price yields
// zero rather than dividing by it.
func DiscountPercent(originalCents, dealCents uint32) int {
    if originalCents == 0 || dealCents >= originalCents {
        return 0
    }
    return int(math.Round(float64(originalCents-dealCents) / float64(originalCents) * 100))
}

// SortByDiscountDesc orders deals by discount percentage, highest first,
// preserving input order between equal discounts.  Used for the featured
// view.
func SortByDiscountDesc(deals []model.Deal) {
    sort.SliceStable(deals, func(i, j int) bool {
        di := DiscountPercent(deals[i].OriginalPriceCents, deals[i].DealPriceCents)
        dj := DiscountPercent(deals[j].OriginalPriceCents, deals[j].DealPriceCents)
        return di > dj
    })
}
