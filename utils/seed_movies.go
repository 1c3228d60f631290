package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/models"
)

// MovieSeeder is the part of the catalog store used by the seed tool.
type MovieSeeder interface {
	Create(ctx context.Context, movie *models.Movie) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SeedMovies validates and inserts entries. When reset is set the catalog is
// emptied first. It returns the number of inserted entries.
func SeedMovies(ctx context.Context, store MovieSeeder, entries []dto.CreateMovieDTO, reset bool) (int, error) {
	schema := NewSchemaValidator()
	for i := range entries {
		if err := ValidateMovieCreate(&entries[i]); err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, entries[i].Title, err)
		}
		if err := schema.ValidateCreate(&entries[i]); err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, entries[i].Title, err)
		}
	}

	if reset {
		if _, err := store.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("clear catalog: %w", err)
		}
	}

	inserted := 0
	for i := range entries {
		movie := entries[i].ToMovie(time.Now().UTC())
		if err := store.Create(ctx, &movie); err != nil {
			return inserted, fmt.Errorf("insert %q: %w", movie.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// SampleMovie is the single entry inserted by `seed -sample`.
func SampleMovie() dto.CreateMovieDTO {
	return dto.CreateMovieDTO{
		Title:       "Sample Movie",
		Description: "This is a sample movie added as a test.",
		ReleaseYear: intPtr(2023),
		Genre:       []string{"Action", "Adventure"},
		Rating:      floatPtr(4.5),
		PosterURL:   "https://example.com/sample-poster.jpg",
		DownloadURL: "https://example.com/sample-download.mp4",
		DownloadOptions: []dto.DownloadOptionDTO{
			{Quality: models.Quality720p, URL: "https://example.com/sample-720p.mp4", Size: "700MB"},
			{Quality: models.Quality1080p, URL: "https://example.com/sample-1080p.mp4", Size: "1.5GB"},
		},
		Screenshots: []string{
			"https://example.com/screenshot1.jpg",
			"https://example.com/screenshot2.jpg",
		},
		Language: "English",
		Source:   "Example Source",
	}
}

// SampleCatalog is the demo catalog used to populate a fresh database.
func SampleCatalog() []dto.CreateMovieDTO {
	return []dto.CreateMovieDTO{
		{
			Title:       "The Shawshank Redemption",
			Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			ReleaseYear: intPtr(1994),
			Genre:       []string{"Drama"},
			Rating:      floatPtr(9.3),
			PosterURL:   "https://example.com/posters/shawshank-redemption.jpg",
			DownloadURL: "https://example.com/movies/shawshank-redemption.mp4",
			DownloadOptions: []dto.DownloadOptionDTO{
				{Quality: models.Quality720p, URL: "https://example.com/movies/shawshank-redemption-720p.mp4", Size: "1.2 GB"},
				{Quality: models.Quality1080p, URL: "https://example.com/movies/shawshank-redemption.mp4", Size: "2.8 GB"},
				{Quality: models.Quality4K, URL: "https://example.com/movies/shawshank-redemption-4k.mp4", Size: "8.5 GB"},
			},
			FullName: "The Shawshank Redemption (1994)",
			Language: "English",
			Size:     "2.8 GB",
			Source:   "Blu-ray",
			Cast:     []string{"Tim Robbins", "Morgan Freeman", "Bob Gunton"},
			Format:   "MKV",
			Subtitle: "English, Spanish, French",
		},
		{
			Title:       "The Godfather",
			Description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
			ReleaseYear: intPtr(1972),
			Genre:       []string{"Crime", "Drama"},
			Rating:      floatPtr(9.2),
			PosterURL:   "https://example.com/posters/godfather.jpg",
			DownloadURL: "https://example.com/movies/godfather.mp4",
			DownloadOptions: []dto.DownloadOptionDTO{
				{Quality: models.Quality720p, URL: "https://example.com/movies/godfather-720p.mp4", Size: "1.4 GB"},
				{Quality: models.Quality1080p, URL: "https://example.com/movies/godfather.mp4", Size: "3.2 GB"},
			},
			FullName: "The Godfather (1972)",
			Language: "English, Italian",
			Size:     "3.2 GB",
			Source:   "Blu-ray Remux",
			Cast:     []string{"Marlon Brando", "Al Pacino", "James Caan"},
			Format:   "MKV",
			Subtitle: "English, Italian",
		},
		{
			Title:       "The Dark Knight",
			Description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
			ReleaseYear: intPtr(2008),
			Genre:       []string{"Action", "Crime", "Drama", "Thriller"},
			Rating:      floatPtr(9.0),
			PosterURL:   "https://example.com/posters/dark-knight.jpg",
			DownloadURL: "https://example.com/movies/dark-knight.mp4",
			DownloadOptions: []dto.DownloadOptionDTO{
				{Quality: models.Quality720p, URL: "https://example.com/movies/dark-knight-720p.mp4", Size: "1.5 GB"},
				{Quality: models.Quality1080p, URL: "https://example.com/movies/dark-knight.mp4", Size: "3.5 GB"},
				{Quality: models.Quality4K, URL: "https://example.com/movies/dark-knight-4k.mp4", Size: "9.2 GB"},
			},
		},
		{
			Title:       "Inception",
			Description: "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
			ReleaseYear: intPtr(2010),
			Genre:       []string{"Action", "Adventure", "Science Fiction", "Thriller"},
			Rating:      floatPtr(8.8),
			PosterURL:   "https://example.com/posters/inception.jpg",
			DownloadURL: "https://example.com/movies/inception.mp4",
		},
		{
			Title:       "Example Series",
			Description: "A short demo series showing per-episode download links.",
			ReleaseYear: intPtr(2021),
			Genre:       []string{"Drama"},
			ContentType: string(models.ContentTypeSeries),
			Episodes: []dto.EpisodeDTO{
				{
					Number: 1,
					Title:  "Pilot",
					DownloadLinks: []dto.DownloadLinkDTO{
						{Quality: models.Quality720p, URL: "https://example.com/series/example-s01e01-720p.mp4", Size: "450 MB"},
					},
				},
				{Number: 2, Title: "The Second One"},
			},
		},
	}
}
