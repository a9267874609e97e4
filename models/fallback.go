package models

// fallbackMovies is the static curated list served when the lookup service is
// unreachable. Kept small and fully specified so every degraded path still has
// complete records to hand out.
var fallbackMovies = []Movie{
	{
		ID:          "tt0111161",
		Title:       "The Shawshank Redemption",
		Genre:       []string{"Drama"},
		Rating:      9.3,
		Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		Year:        1994,
		Director:    "Frank Darabont",
	},
	{
		ID:          "tt0068646",
		Title:       "The Godfather",
		Genre:       []string{"Crime", "Drama"},
		Rating:      9.2,
		Description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_SX300.jpg",
		Year:        1972,
		Director:    "Francis Ford Coppola",
	},
	{
		ID:          "tt0468569",
		Title:       "The Dark Knight",
		Genre:       []string{"Action", "Crime", "Drama"},
		Rating:      9.0,
		Description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
		Year:        2008,
		Director:    "Christopher Nolan",
	},
	{
		ID:          "tt0110912",
		Title:       "Pulp Fiction",
		Genre:       []string{"Crime", "Drama"},
		Rating:      8.9,
		Description: "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BNGNhMDIzZTUtNTBlZi00MTRlLWFjM2ItYzViMjE3YzI5MjljXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_SX300.jpg",
		Year:        1994,
		Director:    "Quentin Tarantino",
	},
	{
		ID:          "tt0137523",
		Title:       "Fight Club",
		Genre:       []string{"Drama"},
		Rating:      8.8,
		Description: "An insomniac office worker and a devil-may-care soapmaker form an underground fight club that evolves into something much, much more.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BNDIzNDU0YzEtYzE5Ni00ZjlkLTk5ZjgtNjM3NWE4YzA3Nzk3XkEyXkFqcGdeQXVyMjUzOTY1NTc@._V1_SX300.jpg",
		Year:        1999,
		Director:    "David Fincher",
	},
}

// FallbackMovies returns a copy of the static fallback list, truncated to
// limit when limit is positive. Callers get their own slice so they can set
// MatchScore or filter without racing each other.
func FallbackMovies(limit int) []Movie {
	n := len(fallbackMovies)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Movie, n)
	copy(out, fallbackMovies[:n])
	return out
}
