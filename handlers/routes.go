package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"reelist/services/auth"
)

// RegisterRoutes mounts the API surface on the router. Routes under the
// authed subrouter require a valid x-auth-token header.
func RegisterRoutes(r *mux.Router, users *UsersHandler, movies *MoviesHandler, issuer auth.Issuer) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", users.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)

	api.HandleFunc("/movies/search", movies.Search).Methods(http.MethodGet)
	api.HandleFunc("/movies/top-rated", movies.TopRated).Methods(http.MethodGet)
	api.HandleFunc("/movies/popular", movies.Popular).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}/recommendations", movies.MovieRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}", movies.Detail).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(Auth(issuer))
	authed.HandleFunc("/users/auth", users.Me).Methods(http.MethodGet)
	authed.HandleFunc("/users/watchlist", users.Watchlist).Methods(http.MethodGet)
	authed.HandleFunc("/users/watchlist/add", users.AddToWatchlist).Methods(http.MethodPost)
	authed.HandleFunc("/users/watchlist/remove", users.RemoveFromWatchlist).Methods(http.MethodPost)
	authed.HandleFunc("/recommendations", movies.WatchlistRecommendations).Methods(http.MethodGet)
}
