package catalog

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/instantfork/instantfork-api/internal/geo"
    "github.com/instantfork/instantfork-api/internal/model"
)

var testNow = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 { return &f }

// liveDeal returns a claimable deal centered on downtown D.C.
func liveDeal(id uint64, mutate func(*model.Deal)) model.Deal {
    d := model.Deal{
        ID:                 id,
        RestaurantID:       1,
        Title:              "Half-Price Ramen",
        Description:        "Tonkotsu bowl",
        Cuisine:            "Japanese",
        DietaryTags:        []string{"gluten-free"},
        OriginalPriceCents: 4500,
        DealPriceCents:     2250,
        Latitude:           ptr(38.9072),
        Longitude:          ptr(-77.0369),
        StartsAt:           testNow.Add(-time.Hour),
        EndsAt:             testNow.Add(3 * time.Hour),
        QuantityAvailable:  10,
        QuantityClaimed:    0,
        IsActive:           true,
    }
    if mutate != nil {
        mutate(&d)
    }
    return d
}

func idsOf(deals []model.Deal) []uint64 {
    out := make([]uint64, 0, len(deals))
    for _, d := range deals {
        out = append(out, d.ID)
    }
    return out
}

func TestFilterExcludesNonClaimable(t *testing.T) {
    deals := []model.Deal{
        liveDeal(1, nil),
        liveDeal(2, func(d *model.Deal) { d.IsActive = false }),
        liveDeal(3, func(d *model.Deal) { d.StartsAt = testNow.Add(time.Hour) }),  // not started
        liveDeal(4, func(d *model.Deal) { d.EndsAt = testNow.Add(-time.Minute) }), // ended
        liveDeal(5, func(d *model.Deal) { d.QuantityClaimed = d.QuantityAvailable }),
        liveDeal(6, func(d *model.Deal) { d.EndsAt = testNow }), // end boundary is exclusive
    }
    got := Filter(deals, FilterState{}, "", nil, testNow)
    assert.Equal(t, []uint64{1}, idsOf(got))
}

func TestFilterPredicates(t *testing.T) {
    deals := []model.Deal{
        liveDeal(1, nil), // Japanese, 2250c, gluten-free
        liveDeal(2, func(d *model.Deal) {
            d.Cuisine = "Mexican"
            d.DealPriceCents = 900
            d.DietaryTags = []string{"vegan"}
        }),
        liveDeal(3, func(d *model.Deal) {
            d.Cuisine = "Italian"
            d.DealPriceCents = 3000
            d.DietaryTags = nil
        }),
    }

    got := Filter(deals, FilterState{Cuisines: []string{"japanese", "MEXICAN"}}, "", nil, testNow)
    assert.Equal(t, []uint64{1, 2}, idsOf(got))

    got = Filter(deals, FilterState{MaxPriceCents: 1000}, "", nil, testNow)
    assert.Equal(t, []uint64{2}, idsOf(got))

    got = Filter(deals, FilterState{DietaryTags: []string{"Vegan"}}, "", nil, testNow)
    assert.Equal(t, []uint64{2}, idsOf(got))

    // Predicates combine with AND.
    got = Filter(deals, FilterState{Cuisines: []string{"Mexican", "Italian"}, MaxPriceCents: 1000}, "", nil, testNow)
    assert.Equal(t, []uint64{2}, idsOf(got))
}

func TestFilterMaxHoursLeft(t *testing.T) {
    deals := []model.Deal{
        liveDeal(1, func(d *model.Deal) { d.EndsAt = testNow.Add(30 * time.Minute) }),
        liveDeal(2, func(d *model.Deal) { d.EndsAt = testNow.Add(5 * time.Hour) }),
    }
    got := Filter(deals, FilterState{MaxHoursLeft: 1}, "", nil, testNow)
    assert.Equal(t, []uint64{1}, idsOf(got))
}

func TestFilterDistance(t *testing.T) {
    dc := geo.Point{Lat: 38.9072, Lng: -77.0369}
    deals := []model.Deal{
        liveDeal(1, nil), // at the user's location
        liveDeal(2, func(d *model.Deal) { // Annapolis, ~50km out
            d.Latitude, d.Longitude = ptr(38.9784), ptr(-76.4922)
        }),
        liveDeal(3, func(d *model.Deal) { // no coordinates
            d.Latitude, d.Longitude = nil, nil
        }),
    }

    got := Filter(deals, FilterState{MaxDistanceKm: 5}, "", &dc, testNow)
    assert.Equal(t, []uint64{1}, idsOf(got))

    // Without a distance predicate the coordinate-less deal survives.
    got = Filter(deals, FilterState{}, "", &dc, testNow)
    assert.Equal(t, []uint64{1, 2, 3}, idsOf(got))
}

func TestFilterQuery(t *testing.T) {
    deals := []model.Deal{
        liveDeal(1, nil),
        liveDeal(2, func(d *model.Deal) {
            d.Title = "Taco Tuesday"
            d.Description = "Two tacos"
            d.Cuisine = "Mexican"
            d.DietaryTags = []string{"spicy"}
        }),
    }
    assert.Equal(t, []uint64{1}, idsOf(Filter(deals, FilterState{}, "RAMEN", nil, testNow)))
    assert.Equal(t, []uint64{2}, idsOf(Filter(deals, FilterState{}, "taco", nil, testNow)))
    assert.Equal(t, []uint64{2}, idsOf(Filter(deals, FilterState{}, "spicy", nil, testNow)))
    assert.Empty(t, Filter(deals, FilterState{}, "sushi", nil, testNow))
}

func TestFilterIsStable(t *testing.T) {
    deals := []model.Deal{liveDeal(3, nil), liveDeal(1, nil), liveDeal(2, nil)}
    got := Filter(deals, FilterState{}, "", nil, testNow)
    assert.Equal(t, []uint64{3, 1, 2}, idsOf(got))
}

func TestDiscountPercent(t *testing.T) {
    assert.Equal(t, 50, DiscountPercent(4500, 2250))
    assert.Equal(t, 33, DiscountPercent(1500, 1000))
    assert.Equal(t, 0, DiscountPercent(0, 100))
    assert.Equal(t, 0, DiscountPercent(1000, 1000))
    assert.Equal(t, 0, DiscountPercent(1000, 1200))
}

func TestSortByDiscountDesc(t *testing.T) {
    deals := []model.Deal{
        liveDeal(1, func(d *model.Deal) { d.DealPriceCents = 4050 }), // 10%
        liveDeal(2, func(d *model.Deal) { d.DealPriceCents = 1125 }), // 75%
        liveDeal(3, func(d *model.Deal) { d.DealPriceCents = 2250 }), // 50%
        liveDeal(4, func(d *model.Deal) { d.DealPriceCents = 4050 }), // 10%, ties with 1
    }
    SortByDiscountDesc(deals)
    assert.Equal(t, []uint64{2, 3, 1, 4}, idsOf(deals))
}
