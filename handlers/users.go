package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reelist/models"
	"reelist/services/auth"
	userssvc "reelist/services/users"
)

type userService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Profile(ctx context.Context, userID string) (*models.UserProfile, error)
	Watchlist(ctx context.Context, userID string) ([]string, error)
	AddToWatchlist(ctx context.Context, userID, movieID string) ([]string, error)
	RemoveFromWatchlist(ctx context.Context, userID, movieID string) ([]string, error)
}

var _ userService = (*userssvc.Service)(nil)

// UsersHandler serves registration, login and watchlist mutation endpoints.
type UsersHandler struct {
	Service userService
	Tokens  auth.Issuer
}

func NewUsersHandler(service userService, tokens auth.Issuer) *UsersHandler {
	return &UsersHandler{Service: service, Tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

// Register creates an account and answers with a session token.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrUserExists):
			writeMessage(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, userssvc.ErrValidation):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[users-handler] register failed: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	h.writeSession(w, r, http.StatusCreated, user)
}

// Login authenticates an account and answers with a session token.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userssvc.ErrInvalidCredentials) {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Printf("[users-handler] login failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.writeSession(w, r, http.StatusOK, user)
}

// Me returns the authenticated account without its credential hash.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	profile, err := h.Service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userssvc.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[users-handler] profile failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Watchlist returns the authenticated user's watchlist IDs.
func (h *UsersHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	watchlist, err := h.Service.Watchlist(r.Context(), userID)
	if err != nil {
		h.writeWatchlistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"watchlist": watchlist})
}

type watchlistMutationRequest struct {
	MovieID string `json:"movieId"`
}

// AddToWatchlist appends a movie to the authenticated user's watchlist.
func (h *UsersHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	h.mutateWatchlist(w, r, h.Service.AddToWatchlist)
}

// RemoveFromWatchlist filters a movie out of the authenticated user's
// watchlist.
func (h *UsersHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	h.mutateWatchlist(w, r, h.Service.RemoveFromWatchlist)
}

func (h *UsersHandler) mutateWatchlist(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) ([]string, error)) {
	userID, ok := UserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req watchlistMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	watchlist, err := op(r.Context(), userID, req.MovieID)
	if err != nil {
		h.writeWatchlistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"watchlist": watchlist})
}

func (h *UsersHandler) writeWatchlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, userssvc.ErrAlreadyInWatchlist):
		writeMessage(w, http.StatusBadRequest, "Movie already in watchlist")
	case errors.Is(err, userssvc.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[users-handler] watchlist operation failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func (h *UsersHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("[users-handler] issue token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	profile, err := h.Service.Profile(r.Context(), user.ID)
	if err != nil {
		log.Printf("[users-handler] load profile: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, status, sessionResponse{Token: token, User: profile})
}
