// Package recommend produces ranked movie suggestions from genre overlap with
// a reference title, backfilled from curated popularity pools. Every public
// operation degrades instead of erroring: when the lookup service is
// unreachable the engine substitutes the static fallback list, and only when
// every pool is exhausted does it return an empty slice.
package recommend

import (
	"context"
	"sort"
	"strings"

	"reelist/models"
)

// Lookup is the slice of the OMDb adapter the engine consumes.
type Lookup interface {
	FetchByID(ctx context.Context, id string) *models.Movie
	SearchByTitle(ctx context.Context, query string, page int) []models.Movie
	FetchMany(ctx context.Context, ids []string) []models.Movie
}

// topRatedIDs is the curated pool of all-time highly rated titles.
var topRatedIDs = []string{
	"tt0111161", // The Shawshank Redemption
	"tt0068646", // The Godfather
	"tt0071562", // The Godfather: Part II
	"tt0468569", // The Dark Knight
	"tt0050083", // 12 Angry Men
	"tt0108052", // Schindler's List
	"tt0167260", // The Lord of the Rings: The Return of the King
	"tt0110912", // Pulp Fiction
	"tt0060196", // The Good, the Bad and the Ugly
	"tt0109830", // Forrest Gump
	"tt0120737", // The Lord of the Rings: The Fellowship of the Ring
	"tt0137523", // Fight Club
	"tt0167261", // The Lord of the Rings: The Two Towers
	"tt1375666", // Inception
	"tt0080684", // Star Wars: Episode V - The Empire Strikes Back
}

// popularIDs is the curated pool of recent popular titles.
var popularIDs = []string{
	"tt9362722",  // Spider-Man: Across the Spider-Verse
	"tt1517268",  // Barbie
	"tt15398776", // Oppenheimer
	"tt8589698",  // Teenage Mutant Ninja Turtles: Mutant Mayhem
	"tt10366206", // John Wick: Chapter 4
	"tt1630029",  // Avatar: The Way of Water
	"tt7286456",  // Joker
	"tt1462764",  // Inside Out 2
	"tt1745960",  // Top Gun: Maverick
	"tt1016150",  // Mission: Impossible - Dead Reckoning Part One
	"tt13603966", // The Super Mario Bros. Movie
	"tt10151854", // The Meg 2: The Trench
	"tt9603212",  // Mission: Impossible - Dead Reckoning Part One
	"tt6710474",  // Everything Everywhere All at Once
	"tt10298810", // Guardians of the Galaxy Vol. 3
}

// knownGenres drives the search dispatch: a query equal to one of these is
// treated as a genre search before falling back to a title search.
var knownGenres = map[string]bool{
	"action": true, "adventure": true, "animation": true, "comedy": true,
	"crime": true, "documentary": true, "drama": true, "family": true,
	"fantasy": true, "horror": true, "mystery": true, "romance": true,
	"sci-fi": true, "thriller": true, "war": true, "western": true,
}

// genrePoolSize is how many titles each curated pool contributes to a
// genre search before filtering.
const genrePoolSize = 15

// Service is the recommendation engine. It holds no mutable state; all
// inputs arrive as parameters and all movie records are fetched fresh.
type Service struct {
	lookup Lookup
}

func NewService(lookup Lookup) *Service {
	return &Service{lookup: lookup}
}

// TopRated returns the curated top-rated pool resolved to full records,
// substituting the static fallback list when the lookup yields nothing.
func (s *Service) TopRated(ctx context.Context, limit int) []models.Movie {
	movies := s.fetchPool(ctx, topRatedIDs, limit)
	if len(movies) == 0 {
		return models.FallbackMovies(limit)
	}
	return movies
}

// Popular returns the curated popular pool resolved to full records,
// substituting the static fallback list when the lookup yields nothing.
func (s *Service) Popular(ctx context.Context, limit int) []models.Movie {
	return s.popularityList(ctx, limit)
}

// ByMovie recommends up to limit titles similar to the given reference.
// Candidates are the union of both curated pools minus the reference itself,
// scored by the number of genres shared with the reference (exact,
// case-sensitive string match) and sorted by score descending with pool
// order as the tie-break. An absent reference or one without genres falls
// back to the popularity list.
func (s *Service) ByMovie(ctx context.Context, movieID string, limit int) []models.Movie {
	ref := s.lookup.FetchByID(ctx, movieID)
	if ref == nil {
		return s.popularityList(ctx, limit)
	}
	if len(ref.Genre) == 0 {
		return s.popularityList(ctx, limit)
	}

	pool := candidatePool(movieID)
	candidates := s.lookup.FetchMany(ctx, pool)

	for i := range candidates {
		candidates[i].MatchScore = matchScore(candidates[i].Genre, ref.Genre)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	return truncate(candidates, limit)
}

// ByWatchlist recommends up to limit titles for a watchlist snapshot. The
// first identifier seeds a ByMovie run over-fetched at twice the limit to
// absorb exclusions; watchlist members are filtered out and any shortfall is
// backfilled from the popularity list. An empty watchlist gets the
// popularity list directly. No returned record's ID is ever a member of the
// watchlist.
func (s *Service) ByWatchlist(ctx context.Context, watchlistIDs []string, limit int) []models.Movie {
	if len(watchlistIDs) == 0 {
		return s.popularityList(ctx, limit)
	}

	owned := idSet(watchlistIDs)

	recs := s.ByMovie(ctx, watchlistIDs[0], limit*2)
	filtered := make([]models.Movie, 0, len(recs))
	for _, m := range recs {
		if !owned[m.ID] {
			filtered = append(filtered, m)
		}
	}

	if len(filtered) < limit {
		chosen := make(map[string]bool, len(filtered))
		for _, m := range filtered {
			chosen[m.ID] = true
		}
		for _, m := range s.popularityList(ctx, limit*2) {
			if len(filtered) >= limit {
				break
			}
			if owned[m.ID] || chosen[m.ID] {
				continue
			}
			chosen[m.ID] = true
			filtered = append(filtered, m)
		}
	}

	return truncate(filtered, limit)
}

// FromSearchResults recommends titles similar to the first search hit,
// excluding anything already present in the results. Fewer than two results
// yields nothing: a single hit gives the panel no room to suggest beyond
// what the user already sees.
func (s *Service) FromSearchResults(ctx context.Context, results []models.Movie, limit int) []models.Movie {
	if len(results) < 2 {
		return []models.Movie{}
	}

	seen := make(map[string]bool, len(results))
	for _, m := range results {
		seen[m.ID] = true
	}

	recs := s.ByMovie(ctx, results[0].ID, limit)
	out := make([]models.Movie, 0, len(recs))
	for _, m := range recs {
		if !seen[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

// ByGenre filters both curated pools down to titles carrying the given
// genre, compared case-insensitively, deduplicated by ID in first-seen
// order.
func (s *Service) ByGenre(ctx context.Context, genre string, limit int) []models.Movie {
	all := append(
		s.fetchPool(ctx, topRatedIDs, genrePoolSize),
		s.fetchPool(ctx, popularIDs, genrePoolSize)...,
	)

	seen := make(map[string]bool, len(all))
	out := make([]models.Movie, 0, len(all))
	for _, m := range all {
		if !m.HasGenre(genre) || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return truncate(out, limit)
}

// defaultSearchLimit bounds genre-dispatch search results.
const defaultSearchLimit = 10

// Search dispatches a free-text query: a query matching a known genre name
// goes through the genre path first, anything else (or an empty genre
// result) becomes a title search, and a dead lookup service degrades to a
// substring filter over the static fallback list.
func (s *Service) Search(ctx context.Context, query string) []models.Movie {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return []models.Movie{}
	}

	if knownGenres[queryLower] {
		if results := s.ByGenre(ctx, query, defaultSearchLimit); len(results) > 0 {
			return results
		}
	}

	if results := s.lookup.SearchByTitle(ctx, query, 1); len(results) > 0 {
		return results
	}

	out := []models.Movie{}
	for _, m := range models.FallbackMovies(0) {
		if strings.Contains(strings.ToLower(m.Title), queryLower) {
			out = append(out, m)
			continue
		}
		for _, g := range m.Genre {
			if strings.Contains(strings.ToLower(g), queryLower) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// popularityList is the shared degradation target: the curated popular pool,
// or the static fallback list when the lookup yields nothing.
func (s *Service) popularityList(ctx context.Context, limit int) []models.Movie {
	movies := s.fetchPool(ctx, popularIDs, limit)
	if len(movies) == 0 {
		return models.FallbackMovies(limit)
	}
	return movies
}

// fetchPool resolves up to limit identifiers from a curated pool. Failed
// lookups shorten the result rather than erroring.
func (s *Service) fetchPool(ctx context.Context, ids []string, limit int) []models.Movie {
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	return s.lookup.FetchMany(ctx, ids[:limit])
}

// candidatePool is the deduplicated union of both curated pools, excluding
// the reference identifier. Order is top-rated first, then popular, which is
// also the tie-break order for equal scores.
func candidatePool(exclude string) []string {
	seen := make(map[string]bool, len(topRatedIDs)+len(popularIDs))
	pool := make([]string, 0, len(topRatedIDs)+len(popularIDs))
	for _, id := range append(append([]string{}, topRatedIDs...), popularIDs...) {
		if id == exclude || seen[id] {
			continue
		}
		seen[id] = true
		pool = append(pool, id)
	}
	return pool
}

// matchScore counts genres present in both sets using exact string equality.
// Case sensitivity here is deliberate and differs from ByGenre; unifying the
// two would change observable ranking.
func matchScore(candidate, reference []string) int {
	ref := make(map[string]bool, len(reference))
	for _, g := range reference {
		ref[g] = true
	}
	score := 0
	for _, g := range candidate {
		if ref[g] {
			score++
		}
	}
	return score
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func truncate(movies []models.Movie, limit int) []models.Movie {
	if limit > 0 && len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
