package models

import "strings"

// Movie is the normalized representation of a title, independent of the
// lookup service's wire format. Instances are built fresh per request by the
// OMDb adapter; nothing caches or owns them beyond the request that produced
// them.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       []string `json:"genre"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Year        int      `json:"year,omitempty"`
	Director    string   `json:"director"`
	Runtime     string   `json:"runtime,omitempty"`
	Actors      string   `json:"actors,omitempty"`

	// MatchScore counts genres shared with a reference movie. It is only
	// populated on recommendation results and is never persisted.
	MatchScore int `json:"matchScore,omitempty"`
}

// HasGenre reports whether the movie carries the given genre,
// compared case-insensitively.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genre {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
