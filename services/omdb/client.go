// Package omdb resolves movie identifiers and title queries against the OMDb
// HTTP API and normalizes every response into models.Movie at this boundary.
// No raw OMDb field leaves this package, and no fault does either: transport
// errors, decode errors and logical "not found" responses all collapse into
// absence, so callers never have to branch on errors.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"reelist/models"
)

const defaultBaseURL = "https://www.omdbapi.com"

// noPoster is OMDb's sentinel for a missing poster image.
const noPoster = "N/A"

// Client talks to the OMDb API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client against the public OMDb endpoint.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL allows pointing the client at a different endpoint,
// primarily for tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// detailResponse is the OMDb full-detail payload. Numeric fields arrive as
// strings and Genre as a comma-and-space-delimited list.
type detailResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Genre      string `json:"Genre"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Runtime    string `json:"Runtime"`
	Actors     string `json:"Actors"`
}

// searchResponse is the OMDb summary-search payload.
type searchResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Search   []struct {
		ImdbID string `json:"imdbID"`
	} `json:"Search"`
}

// FetchByID resolves a single identifier to a full movie record. It returns
// nil when the identifier is unknown to OMDb or when the call fails for any
// reason; failures are logged here and never surfaced to the caller.
func (c *Client) FetchByID(ctx context.Context, id string) *models.Movie {
	if id == "" {
		return nil
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("i", id)
	q.Set("plot", "full")

	var detail detailResponse
	if err := c.get(ctx, q, &detail); err != nil {
		log.Printf("[omdb] fetch %s failed: %v", id, err)
		return nil
	}

	if detail.Response == "False" {
		log.Printf("[omdb] no record for %s: %s", id, detail.Error)
		return nil
	}

	movie := normalize(detail)
	return &movie
}

// SearchByTitle performs a summary search and resolves each hit to a full
// record. Details are fetched concurrently but results keep the order OMDb
// returned the summaries in; individual resolution failures drop that entry
// rather than failing the batch. An empty query returns an empty slice
// without touching the network.
func (c *Client) SearchByTitle(ctx context.Context, query string, page int) []models.Movie {
	if query == "" {
		return []models.Movie{}
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("s", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("type", "movie")

	var result searchResponse
	if err := c.get(ctx, q, &result); err != nil {
		log.Printf("[omdb] search %q failed: %v", query, err)
		return []models.Movie{}
	}

	if result.Response == "False" {
		log.Printf("[omdb] search %q: %s", query, result.Error)
		return []models.Movie{}
	}

	ids := make([]string, 0, len(result.Search))
	for _, hit := range result.Search {
		ids = append(ids, hit.ImdbID)
	}

	return c.FetchMany(ctx, ids)
}

// FetchMany resolves identifiers concurrently via FetchByID, dropping absent
// or failed entries. Relative order of the input identifiers is preserved:
// results are re-assembled by input index, not by completion order.
func (c *Client) FetchMany(ctx context.Context, ids []string) []models.Movie {
	resolved := iter.Map(ids, func(id *string) *models.Movie {
		return c.FetchByID(ctx, *id)
	})

	movies := make([]models.Movie, 0, len(resolved))
	for _, m := range resolved {
		if m != nil {
			movies = append(movies, *m)
		}
	}
	return movies
}

func (c *Client) get(ctx context.Context, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalize converts the raw OMDb shape into a Movie. Rules: genre "A, B"
// splits into ["A","B"] and is never nil; rating defaults to 0 when missing
// or non-numeric; the "N/A" poster sentinel becomes an empty URL; unparseable
// years become 0; a missing director becomes "Unknown".
func normalize(d detailResponse) models.Movie {
	genre := []string{}
	if d.Genre != "" && d.Genre != "N/A" {
		genre = strings.Split(d.Genre, ", ")
	}

	rating := 0.0
	if v, err := strconv.ParseFloat(d.ImdbRating, 64); err == nil && v >= 0 {
		rating = v
	}

	poster := d.Poster
	if poster == noPoster {
		poster = ""
	}

	director := d.Director
	if director == "" {
		director = "Unknown"
	}
	runtime := d.Runtime
	if runtime == "" {
		runtime = "Unknown"
	}
	actors := d.Actors
	if actors == "" {
		actors = "Unknown"
	}

	return models.Movie{
		ID:          d.ImdbID,
		Title:       d.Title,
		Genre:       genre,
		Rating:      rating,
		Description: d.Plot,
		PosterURL:   poster,
		Year:        parseYear(d.Year),
		Director:    director,
		Runtime:     runtime,
		Actors:      actors,
	}
}

// parseYear reads the leading digit run of an OMDb year value, which may
// carry a range suffix like "1994–" for long-running titles.
func parseYear(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}
