package repository

import (
	"context"
	"strings"
)

// DealSearchQuery defines filters & pagination for searching deals.
type DealSearchQuery struct {
	Title      string
	Cuisine    string
	Restaurant string
	TimeFilter string
	Page       int
	PageSize   int
}

// PublicDealRow is the flattened search result joined with the owning
// restaurant.  Prices are duplicated in dollars for display.
type PublicDealRow struct {
	ID                 uint64  `json:"id"`
	Title              string  `json:"title"`
	Cuisine            string  `json:"cuisine"`
	RestaurantID       uint64  `json:"restaurant_id"`
	Restaurant         string  `json:"restaurant"`
	StartsAt           string  `json:"starts_at"`
	EndsAt             string  `json:"ends_at"`
	OriginalPriceCents uint64  `json:"original_price_cents"`
	DealPriceCents     uint64  `json:"deal_price_cents"`
	OriginalPrice      float64 `json:"original_price"`
	DealPrice          float64 `json:"deal_price"`
	Remaining          uint32  `json:"remaining"`
}

// SearchActive performs a paginated LIKE search over the deal catalog.
// TimeFilter selects the time window: "live" (default) keeps deals whose
// window contains now, "upcoming" keeps deals starting later, "any" skips
// the time predicate.  Only active deals are ever returned.
func (r *DealRepo) SearchActive(ctx context.Context, q DealSearchQuery) ([]PublicDealRow, int64, error) {
	where := []string{"d.is_active = 1"}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "upcoming":
		where = append(where, "d.starts_at > NOW()")
	default: // "live"
		where = append(where, "d.starts_at <= NOW() AND d.ends_at > NOW()")
	}

	if q.Title != "" {
		where = append(where, "LOWER(d.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Cuisine != "" {
		where = append(where, "LOWER(d.cuisine) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Cuisine)+"%")
	}
	if q.Restaurant != "" {
		where = append(where, "LOWER(rt.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Restaurant)+"%")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM deals d
		JOIN restaurants rt ON rt.id = d.restaurant_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			d.id,
			d.title,
			d.cuisine,
			rt.id   AS restaurant_id,
			rt.name AS restaurant_name,
			DATE_FORMAT(d.starts_at, '%Y-%m-%d %T') AS starts_at,
			DATE_FORMAT(d.ends_at,   '%Y-%m-%d %T') AS ends_at,
			d.original_price_cents,
			d.deal_price_cents,
			GREATEST(d.quantity_available - d.quantity_claimed, 0) AS remaining
		FROM deals d
		JOIN restaurants rt ON rt.id = d.restaurant_id
		WHERE ` + cond + `
		ORDER BY d.ends_at ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicDealRow, 0, limit)
	for rows.Next() {
		var d PublicDealRow
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Cuisine,
			&d.RestaurantID,
			&d.Restaurant,
			&d.StartsAt,
			&d.EndsAt,
			&d.OriginalPriceCents,
			&d.DealPriceCents,
			&d.Remaining,
		); err != nil {
			return nil, 0, err
		}
		d.OriginalPrice = float64(d.OriginalPriceCents) / 100.0
		d.DealPrice = float64(d.DealPriceCents) / 100.0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
