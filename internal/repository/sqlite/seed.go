package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/movie-ratings/internal/model"
)

// starterMovies is a small catalog inserted on first startup so the app is
// browsable before any out-of-band import has run.
var starterMovies = []model.Movie{
	{Title: "2001: A Space Odyssey", IMDBURL: "https://www.imdb.com/title/tt0062622/"},
	{Title: "Casablanca", IMDBURL: "https://www.imdb.com/title/tt0034583/"},
	{Title: "Jurassic Park", IMDBURL: "https://www.imdb.com/title/tt0107290/"},
	{Title: "Pulp Fiction", IMDBURL: "https://www.imdb.com/title/tt0110912/"},
	{Title: "Spirited Away", IMDBURL: "https://www.imdb.com/title/tt0245429/"},
	{Title: "The Godfather", IMDBURL: "https://www.imdb.com/title/tt0068646/"},
	{Title: "The Matrix", IMDBURL: "https://www.imdb.com/title/tt0133093/"},
	{Title: "Toy Story", IMDBURL: "https://www.imdb.com/title/tt0114709/"},
}

var starterReleaseYears = map[string]int{
	"2001: A Space Odyssey": 1968,
	"Casablanca":            1942,
	"Jurassic Park":         1993,
	"Pulp Fiction":          1994,
	"Spirited Away":         2001,
	"The Godfather":         1972,
	"The Matrix":            1999,
	"Toy Story":             1995,
}

// SeedMovies inserts the starter catalog when the movies table is empty.
// Safe to call on every startup; it does nothing once any movie exists.
func (r *MovieRepo) SeedMovies(ctx context.Context) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i := range starterMovies {
		m := starterMovies[i]
		if year, ok := starterReleaseYears[m.Title]; ok {
			released := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			m.ReleasedAt = &released
		}
		if err := r.Create(ctx, &m); err != nil {
			return i, fmt.Errorf("seeding movie %q: %w", m.Title, err)
		}
	}

	return len(starterMovies), nil
}
