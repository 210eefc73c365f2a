package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/instantfork/instantfork-api/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetPreferences loads the user's saved filter preferences.  When no row
// exists an empty Preferences value with the user's ID is returned.
func (r *UserRepo) GetPreferences(ctx context.Context, userID uint64) (Preferences, error) {
	var (
		p        Preferences
		cuisines string
		dietary  string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,cuisines,dietary_tags,max_distance_km,max_price_cents,updated_at FROM user_preferences WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &cuisines, &dietary, &p.MaxDistanceKm, &p.MaxPriceCents, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Preferences{UserID: userID}, nil
	}
	if err != nil {
		return Preferences{}, err
	}
	p.Cuisines = splitTags(cuisines)
	p.DietaryTags = splitTags(dietary)
	return p, nil
}

// Preferences mirrors the 'user_preferences' table with the comma separated
// tag columns expanded into slices.
type Preferences struct {
	UserID        uint64    `json:"user_id"`
	Cuisines      []string  `json:"cuisines"`
	DietaryTags   []string  `json:"dietary_tags"`
	MaxDistanceKm float64   `json:"max_distance_km"`
	MaxPriceCents uint32    `json:"max_price_cents"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SavePreferences upserts the user's preference row.
func (r *UserRepo) SavePreferences(ctx context.Context, p Preferences) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, cuisines, dietary_tags, max_distance_km, max_price_cents)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE cuisines=VALUES(cuisines), dietary_tags=VALUES(dietary_tags),
		 max_distance_km=VALUES(max_distance_km), max_price_cents=VALUES(max_price_cents)`,
		p.UserID, joinTags(p.Cuisines), joinTags(p.DietaryTags), p.MaxDistanceKm, p.MaxPriceCents)
	return err
}

// splitTags expands a comma separated column into a trimmed slice, dropping
// empty entries.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// joinTags is the inverse of splitTags for storage.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
