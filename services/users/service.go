// Package users manages account registration, authentication and watchlist
// membership on top of the sqlite store.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reelist/internal/database"
	"reelist/models"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
	ErrValidation         = errors.New("validation failed")
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	bcryptCost     = 10
)

// Service exposes account and watchlist operations to the HTTP layer.
type Service struct {
	repo *database.UserRepository
}

func NewService(repo *database.UserRepository) *Service {
	return &Service{repo: repo}
}

// Register creates an account with a bcrypt-hashed password and an empty
// watchlist.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLen)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and bad
// passwords produce the same error so callers cannot probe for accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID returns the account for an ID.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Watchlist returns the user's movie IDs in first-added order.
func (s *Service) Watchlist(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.Watchlist(ctx, userID)
}

// AddToWatchlist appends a movie and returns the updated list. Adding a
// movie that is already present is an error, matching the API contract.
func (s *Service) AddToWatchlist(ctx context.Context, userID, movieID string) ([]string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if movieID == "" {
		return nil, fmt.Errorf("%w: movie id required", ErrValidation)
	}

	present, err := s.repo.HasWatchlistItem(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrAlreadyInWatchlist
	}

	if err := s.repo.AddWatchlistItem(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.repo.Watchlist(ctx, userID)
}

// RemoveFromWatchlist filters a movie out of the list and returns the
// remainder. Removing an absent movie is not an error.
func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, movieID string) ([]string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveWatchlistItem(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.repo.Watchlist(ctx, userID)
}

// Profile assembles the wire shape returned by the auth endpoints.
func (s *Service) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	watchlist, err := s.repo.Watchlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Watchlist: watchlist,
	}, nil
}
