package recommend_test

import (
	"context"
	"reflect"
	"testing"

	"reelist/models"
	"reelist/services/recommend"
)

// fakeLookup serves records from a map; when down is set every call behaves
// like an unreachable lookup service.
type fakeLookup struct {
	movies map[string]models.Movie
	titles []models.Movie
	down   bool
}

func (f *fakeLookup) FetchByID(_ context.Context, id string) *models.Movie {
	if f.down {
		return nil
	}
	m, ok := f.movies[id]
	if !ok {
		return nil
	}
	clone := m
	return &clone
}

func (f *fakeLookup) SearchByTitle(_ context.Context, query string, _ int) []models.Movie {
	if f.down || query == "" {
		return []models.Movie{}
	}
	return append([]models.Movie{}, f.titles...)
}

func (f *fakeLookup) FetchMany(ctx context.Context, ids []string) []models.Movie {
	out := []models.Movie{}
	for _, id := range ids {
		if m := f.FetchByID(ctx, id); m != nil {
			out = append(out, *m)
		}
	}
	return out
}

func movie(id string, genres ...string) models.Movie {
	return models.Movie{ID: id, Title: "Title " + id, Genre: genres}
}

// poolLookup seeds a fake with the full curated pools so recommendation
// candidates resolve. Genres are synthetic and chosen per test.
func poolLookup(genres map[string][]string) *fakeLookup {
	ids := []string{
		"tt0111161", "tt0068646", "tt0071562", "tt0468569", "tt0050083",
		"tt0108052", "tt0167260", "tt0110912", "tt0060196", "tt0109830",
		"tt0120737", "tt0137523", "tt0167261", "tt1375666", "tt0080684",
		"tt9362722", "tt1517268", "tt15398776", "tt8589698", "tt10366206",
		"tt1630029", "tt7286456", "tt1462764", "tt1745960", "tt1016150",
		"tt13603966", "tt10151854", "tt9603212", "tt6710474", "tt10298810",
	}
	movies := make(map[string]models.Movie, len(ids))
	for _, id := range ids {
		g, ok := genres[id]
		if !ok {
			g = []string{"Comedy"}
		}
		movies[id] = movie(id, g...)
	}
	return &fakeLookup{movies: movies}
}

func TestByMovieScoresAndSortsByGenreOverlap(t *testing.T) {
	lookup := &fakeLookup{movies: map[string]models.Movie{
		"ttA":       movie("ttA", "Drama", "Crime"),
		"tt0111161": movie("tt0111161", "Drama"),          // score 1
		"tt0068646": movie("tt0068646", "Drama", "Crime"), // score 2
		"tt0071562": movie("tt0071562", "Comedy"),         // score 0
	}}
	svc := recommend.NewService(lookup)

	recs := svc.ByMovie(context.Background(), "ttA", 3)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}

	wantOrder := []string{"tt0068646", "tt0111161", "tt0071562"}
	wantScores := []int{2, 1, 0}
	for i := range wantOrder {
		if recs[i].ID != wantOrder[i] || recs[i].MatchScore != wantScores[i] {
			t.Fatalf("position %d: expected %s score %d, got %s score %d",
				i, wantOrder[i], wantScores[i], recs[i].ID, recs[i].MatchScore)
		}
	}
}

func TestByMovieGenreMatchIsCaseSensitive(t *testing.T) {
	lookup := &fakeLookup{movies: map[string]models.Movie{
		"ttA":       movie("ttA", "Drama"),
		"tt0111161": movie("tt0111161", "drama"),
		"tt0068646": movie("tt0068646", "Drama"),
	}}
	svc := recommend.NewService(lookup)

	recs := svc.ByMovie(context.Background(), "ttA", 2)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ID != "tt0068646" || recs[0].MatchScore != 1 {
		t.Fatalf("expected exact-case match to rank first, got %s score %d", recs[0].ID, recs[0].MatchScore)
	}
	if recs[1].MatchScore != 0 {
		t.Fatalf("expected lowercase variant to score 0, got %d", recs[1].MatchScore)
	}
}

func TestByMovieTieBreakIsPoolOrder(t *testing.T) {
	// Every candidate scores zero, so the result must follow pool order:
	// top-rated IDs first, in their curated sequence.
	lookup := poolLookup(map[string][]string{"ttA": {"Film-Noir"}})
	lookup.movies["ttA"] = movie("ttA", "Film-Noir")
	svc := recommend.NewService(lookup)

	recs := svc.ByMovie(context.Background(), "ttA", 4)
	want := []string{"tt0111161", "tt0068646", "tt0071562", "tt0468569"}
	for i := range want {
		if recs[i].ID != want[i] {
			t.Fatalf("tie-break broke pool order at %d: expected %s, got %s", i, want[i], recs[i].ID)
		}
	}
}

func TestByMovieMissingReferenceFallsBackToPopular(t *testing.T) {
	lookup := poolLookup(nil)
	svc := recommend.NewService(lookup)

	recs := svc.ByMovie(context.Background(), "tt-unknown", 3)
	want := []string{"tt9362722", "tt1517268", "tt15398776"}
	for i := range want {
		if recs[i].ID != want[i] {
			t.Fatalf("expected popular pool at %d: want %s, got %s", i, want[i], recs[i].ID)
		}
	}
}

func TestByMovieEmptyGenreFallsBackToPopular(t *testing.T) {
	lookup := poolLookup(nil)
	lookup.movies["ttA"] = movie("ttA")
	svc := recommend.NewService(lookup)

	recs := svc.ByMovie(context.Background(), "ttA", 2)
	if len(recs) != 2 || recs[0].ID != "tt9362722" {
		t.Fatalf("expected popular fallback for genreless reference, got %+v", recs)
	}
}

func TestByWatchlistExcludesWatchlistMembers(t *testing.T) {
	lookup := poolLookup(map[string][]string{
		"tt0111161": {"Drama"},
		"tt0068646": {"Drama"},
		"tt0137523": {"Drama"},
	})
	lookup.movies["ttRef"] = movie("ttRef", "Drama")
	svc := recommend.NewService(lookup)

	watchlist := []string{"ttRef", "tt0111161", "tt0068646"}
	recs := svc.ByWatchlist(context.Background(), watchlist, 5)

	if len(recs) > 5 {
		t.Fatalf("expected at most 5 records, got %d", len(recs))
	}
	owned := map[string]bool{}
	for _, id := range watchlist {
		owned[id] = true
	}
	for _, m := range recs {
		if owned[m.ID] {
			t.Fatalf("recommendation %s is already on the watchlist", m.ID)
		}
	}
}

func TestByWatchlistEmptyMatchesPopularPath(t *testing.T) {
	lookup := poolLookup(nil)
	svc := recommend.NewService(lookup)

	fromWatchlist := svc.ByWatchlist(context.Background(), nil, 4)
	popular := svc.Popular(context.Background(), 4)

	if !reflect.DeepEqual(fromWatchlist, popular) {
		t.Fatalf("empty watchlist should equal popular path:\n%v\n%v", fromWatchlist, popular)
	}
}

func TestByWatchlistBackfillsFromPopular(t *testing.T) {
	// The watchlist owns most of the scored candidates, so the filter leaves
	// fewer than limit and the popular pool has to top the list up.
	lookup := poolLookup(nil)
	lookup.movies["ttRef"] = movie("ttRef", "Film-Noir")
	svc := recommend.NewService(lookup)

	watchlist := []string{
		"ttRef", "tt0111161", "tt0068646", "tt0071562", "tt0468569",
		"tt0050083", "tt0108052", "tt0167260", "tt0110912",
	}
	recs := svc.ByWatchlist(context.Background(), watchlist, 5)
	if len(recs) != 5 {
		t.Fatalf("expected backfill to reach 5, got %d", len(recs))
	}

	// Two survivors from the scored set, then popular-pool backfill.
	want := []string{"tt0060196", "tt0109830", "tt9362722", "tt1517268", "tt15398776"}
	for i := range want {
		if recs[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], recs[i].ID)
		}
	}
}

func TestByWatchlistOutageServesStaticFallback(t *testing.T) {
	svc := recommend.NewService(&fakeLookup{down: true})

	recs := svc.ByWatchlist(context.Background(), []string{"ttX"}, 5)
	if len(recs) != 5 {
		t.Fatalf("expected the 5 static fallback records, got %d", len(recs))
	}
	if recs[0].ID != "tt0111161" || recs[0].Title == "" {
		t.Fatalf("expected fully specified fallback records, got %+v", recs[0])
	}
}

func TestByWatchlistOutageFiltersWatchlistFromFallback(t *testing.T) {
	svc := recommend.NewService(&fakeLookup{down: true})

	recs := svc.ByWatchlist(context.Background(), []string{"tt0111161"}, 5)
	for _, m := range recs {
		if m.ID == "tt0111161" {
			t.Fatalf("fallback result contains watchlist member")
		}
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 remaining fallback records, got %d", len(recs))
	}
}

func TestFromSearchResultsRequiresTwoResults(t *testing.T) {
	svc := recommend.NewService(poolLookup(nil))

	if recs := svc.FromSearchResults(context.Background(), nil, 4); len(recs) != 0 {
		t.Fatalf("expected empty for no results, got %d", len(recs))
	}
	single := []models.Movie{movie("tt0111161", "Drama")}
	if recs := svc.FromSearchResults(context.Background(), single, 4); len(recs) != 0 {
		t.Fatalf("expected empty for a single result, got %d", len(recs))
	}
}

func TestFromSearchResultsExcludesResultMembers(t *testing.T) {
	lookup := poolLookup(map[string][]string{
		"tt0111161": {"Drama"},
		"tt0068646": {"Drama"},
	})
	lookup.movies["ttRef"] = movie("ttRef", "Drama")
	svc := recommend.NewService(lookup)

	results := []models.Movie{lookup.movies["ttRef"], lookup.movies["tt0111161"]}
	recs := svc.FromSearchResults(context.Background(), results, 5)

	for _, m := range recs {
		if m.ID == "ttRef" || m.ID == "tt0111161" {
			t.Fatalf("recommendation %s already appears in search results", m.ID)
		}
	}
	if len(recs) == 0 {
		t.Fatalf("expected remaining recommendations after filtering")
	}
}

func TestByGenreFiltersCaseInsensitivelyAndDeduplicates(t *testing.T) {
	lookup := poolLookup(map[string][]string{
		"tt0111161": {"Drama"},
		"tt0068646": {"drama", "Crime"},
		"tt9362722": {"Animation"},
	})
	svc := recommend.NewService(lookup)

	recs := svc.ByGenre(context.Background(), "DRAMA", 10)
	if len(recs) != 2 {
		t.Fatalf("expected 2 drama titles, got %d", len(recs))
	}
	if recs[0].ID != "tt0111161" || recs[1].ID != "tt0068646" {
		t.Fatalf("expected first-seen order, got %s, %s", recs[0].ID, recs[1].ID)
	}

	seen := map[string]bool{}
	for _, m := range recs {
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestByGenreIsIdempotent(t *testing.T) {
	lookup := poolLookup(map[string][]string{
		"tt0111161": {"Drama"},
		"tt0137523": {"Drama"},
	})
	svc := recommend.NewService(lookup)

	first := svc.ByGenre(context.Background(), "drama", 10)
	second := svc.ByGenre(context.Background(), "drama", 10)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for unchanged lookup:\n%v\n%v", first, second)
	}
}

func TestSearchDispatchesGenreQueries(t *testing.T) {
	lookup := poolLookup(map[string][]string{"tt0111161": {"Drama"}})
	lookup.titles = []models.Movie{movie("ttTitle", "Comedy")}
	svc := recommend.NewService(lookup)

	recs := svc.Search(context.Background(), "drama")
	if len(recs) != 1 || recs[0].ID != "tt0111161" {
		t.Fatalf("expected genre dispatch to win, got %+v", recs)
	}

	recs = svc.Search(context.Background(), "heat")
	if len(recs) != 1 || recs[0].ID != "ttTitle" {
		t.Fatalf("expected title search for non-genre query, got %+v", recs)
	}
}

func TestSearchOutageFiltersStaticList(t *testing.T) {
	svc := recommend.NewService(&fakeLookup{down: true})

	recs := svc.Search(context.Background(), "fight")
	if len(recs) != 1 || recs[0].ID != "tt0137523" {
		t.Fatalf("expected Fight Club from static fallback, got %+v", recs)
	}

	recs = svc.Search(context.Background(), "crime")
	if len(recs) != 3 {
		t.Fatalf("expected 3 crime titles from static fallback, got %d", len(recs))
	}
}
