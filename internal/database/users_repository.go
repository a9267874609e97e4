package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"reelist/models"
)

// UserRepository persists accounts and their watchlists. Watchlist rows keep
// an explicit position so "first added" stays well defined across removals.
type UserRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) *UserRepository {
	return &UserRepository{conn: conn}
}

// ErrDuplicateUsername signals a unique-constraint violation on username.
var ErrDuplicateUsername = errors.New("username already exists")

// Insert stores a new account.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername returns the account for a username, or nil when absent.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
}

// FindByID returns the account for an ID, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.conn.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// Watchlist returns the user's movie IDs in first-added order.
func (r *UserRepository) Watchlist(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT movie_id FROM watchlist_items WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return ids, nil
}

// HasWatchlistItem reports whether the movie is already on the watchlist.
func (r *UserRepository) HasWatchlistItem(ctx context.Context, userID, movieID string) (bool, error) {
	var one int
	err := r.conn.QueryRowContext(ctx,
		`SELECT 1 FROM watchlist_items WHERE user_id = ? AND movie_id = ?`, userID, movieID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query watchlist item: %w", err)
	}
	return true, nil
}

// AddWatchlistItem appends a movie to the end of the watchlist.
func (r *UserRepository) AddWatchlistItem(ctx context.Context, userID, movieID string) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO watchlist_items (user_id, movie_id, position)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM watchlist_items WHERE user_id = ?))`,
		userID, movieID, userID,
	)
	if err != nil {
		return fmt.Errorf("insert watchlist item: %w", err)
	}
	return nil
}

// RemoveWatchlistItem deletes a movie from the watchlist. Removing an absent
// entry is a no-op.
func (r *UserRepository) RemoveWatchlistItem(ctx context.Context, userID, movieID string) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM watchlist_items WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	return nil
}
