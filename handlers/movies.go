package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelist/models"
	omdbsvc "reelist/services/omdb"
	recommendsvc "reelist/services/recommend"
)

type movieLookup interface {
	FetchByID(ctx context.Context, id string) *models.Movie
}

type recommender interface {
	TopRated(ctx context.Context, limit int) []models.Movie
	Popular(ctx context.Context, limit int) []models.Movie
	ByMovie(ctx context.Context, movieID string, limit int) []models.Movie
	ByWatchlist(ctx context.Context, watchlistIDs []string, limit int) []models.Movie
	Search(ctx context.Context, query string) []models.Movie
}

type watchlistReader interface {
	Watchlist(ctx context.Context, userID string) ([]string, error)
}

var (
	_ movieLookup = (*omdbsvc.Client)(nil)
	_ recommender = (*recommendsvc.Service)(nil)
)

// MoviesHandler serves browse, search and recommendation endpoints. The
// underlying services never error; degraded lookups surface as shorter or
// generic result lists.
type MoviesHandler struct {
	Lookup     movieLookup
	Recommend  recommender
	Watchlists watchlistReader
}

func NewMoviesHandler(lookup movieLookup, recommend recommender, watchlists watchlistReader) *MoviesHandler {
	return &MoviesHandler{Lookup: lookup, Recommend: recommend, Watchlists: watchlists}
}

const defaultListLimit = 5

// Detail returns a single movie by ID, or 404 when the lookup service does
// not know it.
func (h *MoviesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	movie := h.Lookup.FetchByID(r.Context(), id)
	if movie == nil {
		writeMessage(w, http.StatusNotFound, "Movie not found")
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// Search answers free-text queries, dispatching genre-shaped queries through
// the genre path.
func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	movies := h.Recommend.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, map[string][]models.Movie{"movies": movies})
}

// TopRated lists the curated top-rated pool.
func (h *MoviesHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultListLimit)
	writeJSON(w, http.StatusOK, map[string][]models.Movie{"movies": h.Recommend.TopRated(r.Context(), limit)})
}

// Popular lists the curated popular pool.
func (h *MoviesHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultListLimit)
	writeJSON(w, http.StatusOK, map[string][]models.Movie{"movies": h.Recommend.Popular(r.Context(), limit)})
}

// MovieRecommendations lists titles similar to the given movie.
func (h *MoviesHandler) MovieRecommendations(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit := limitParam(r, defaultListLimit)
	writeJSON(w, http.StatusOK, map[string][]models.Movie{"movies": h.Recommend.ByMovie(r.Context(), id, limit)})
}

// WatchlistRecommendations lists suggestions for the authenticated user's
// stored watchlist. A failing watchlist read degrades to the empty-watchlist
// path rather than erroring, keeping the endpoint's never-fail contract.
func (h *MoviesHandler) WatchlistRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	watchlist, err := h.Watchlists.Watchlist(r.Context(), userID)
	if err != nil {
		log.Printf("[movies-handler] watchlist read failed, recommending from empty list: %v", err)
		watchlist = nil
	}

	limit := limitParam(r, defaultListLimit)
	writeJSON(w, http.StatusOK, map[string][]models.Movie{"movies": h.Recommend.ByWatchlist(r.Context(), watchlist, limit)})
}

func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
