package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/instantfork/instantfork-api/internal/model"
)

// RestaurantRepo provides data access to the restaurants table.  An owner
// account operates at most one restaurant; the owner_id column carries a
// unique index and Create surfaces a violation as ErrRestaurantExists.
type RestaurantRepo struct {
    db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

const restaurantCols = `id, owner_id, name, category, address, phone, website, latitude, longitude, created_at, updated_at`

// scanRestaurant reads one row into a model.Restaurant.  The phone and
// website columns are nullable.
func scanRestaurant(row interface{ Scan(...interface{}) error }) (model.Restaurant, error) {
    var (
        rest           model.Restaurant
        phone, website sql.NullString
    )
    err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Category, &rest.Address,
        &phone, &website, &rest.Latitude, &rest.Longitude, &rest.CreatedAt, &rest.UpdatedAt)
    if err != nil {
        return model.Restaurant{}, err
    }
    if phone.Valid {
        p := phone.String
        rest.Phone = &p
    }
    if website.Valid {
        w := website.String
        rest.Website = &w
    }
    return rest, nil
}

// Create inserts a restaurant for the owner and returns its ID.  A duplicate
// owner_id maps to ErrRestaurantExists.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO restaurants (owner_id, name, category, address, phone, website, latitude, longitude)
         VALUES (?,?,?,?,?,?,?,?)`,
        rest.OwnerID, rest.Name, rest.Category, rest.Address, rest.Phone, rest.Website,
        rest.Latitude, rest.Longitude)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrRestaurantExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByID fetches a restaurant by primary key.  Missing rows map to
// ErrRestaurantNotFound.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
    rest, err := scanRestaurant(r.db.QueryRowContext(ctx,
        `SELECT `+restaurantCols+` FROM restaurants WHERE id=? LIMIT 1`, id))
    if err == sql.ErrNoRows {
        return model.Restaurant{}, ErrRestaurantNotFound
    }
    return rest, err
}

// GetByOwner fetches the restaurant operated by the given owner, enforcing
// the one-owner-one-restaurant lookup used across the back office.  Missing
// rows map to ErrRestaurantNotFound.
func (r *RestaurantRepo) GetByOwner(ctx context.Context, ownerID uint64) (model.Restaurant, error) {
    rest, err := scanRestaurant(r.db.QueryRowContext(ctx,
        `SELECT `+restaurantCols+` FROM restaurants WHERE owner_id=? LIMIT 1`, ownerID))
    if err == sql.ErrNoRows {
        return model.Restaurant{}, ErrRestaurantNotFound
    }
    return rest, err
}

// Update rewrites the mutable restaurant columns.  Ownership is enforced by
// the WHERE clause: updating someone else's restaurant affects zero rows and
// returns ErrForbidden when the restaurant exists under another owner, or
// ErrRestaurantNotFound when it does not exist at all.
func (r *RestaurantRepo) Update(ctx context.Context, rest *model.Restaurant) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE restaurants SET name=?, category=?, address=?, phone=?, website=?, latitude=?, longitude=?
         WHERE id=? AND owner_id=?`,
        rest.Name, rest.Category, rest.Address, rest.Phone, rest.Website,
        rest.Latitude, rest.Longitude, rest.ID, rest.OwnerID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var exists int
        err := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurants WHERE id=? LIMIT 1`, rest.ID).Scan(&exists)
        if err == sql.ErrNoRows {
            return ErrRestaurantNotFound
        }
        if err != nil {
            return err
        }
        return ErrForbidden
    }
    return nil
}

// ListAll returns every restaurant ordered by name, for the public browse
// endpoint.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+restaurantCols+` FROM restaurants ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Restaurant, 0)
    for rows.Next() {
        rest, err := scanRestaurant(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, rest)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
