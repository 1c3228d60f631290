package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateMovieDTO_ToMovie(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("movie drops episodes and defaults type", func(t *testing.T) {
		in := CreateMovieDTO{
			Title:       "  Heat ",
			Description: "LA crime saga",
			ReleaseYear: ptr(1995),
			Episodes:    []EpisodeDTO{{Number: 1, Title: "ignored"}},
		}
		m := in.ToMovie(now)

		assert.Equal(t, "Heat", m.Title)
		assert.Equal(t, 1995, m.ReleaseYear)
		assert.Equal(t, models.ContentTypeMovie, m.ContentType)
		assert.Nil(t, m.Episodes)
		assert.NotNil(t, m.Genre)
		assert.NotNil(t, m.Screenshots)
		assert.NotNil(t, m.DownloadOptions)
		assert.Equal(t, now, m.CreatedAt)
		assert.Equal(t, now, m.UpdatedAt)
	})

	t.Run("series keeps episodes", func(t *testing.T) {
		in := CreateMovieDTO{
			Title:       "Show",
			Description: "d",
			ReleaseYear: ptr(2020),
			ContentType: "series",
			Episodes: []EpisodeDTO{{
				Number:        1,
				Title:         " Pilot ",
				DownloadLinks: []DownloadLinkDTO{{Quality: "720p", URL: " https://e/1 "}},
			}},
		}
		m := in.ToMovie(now)

		require.Len(t, m.Episodes, 1)
		assert.Equal(t, "Pilot", m.Episodes[0].Title)
		assert.Equal(t, "https://e/1", m.Episodes[0].DownloadLinks[0].URL)
	})
}

func TestCreateMovieDTO_ZeroRatingKept(t *testing.T) {
	now := time.Now().UTC()

	withZero := CreateMovieDTO{Title: "T", Description: "d", ReleaseYear: ptr(2000), Rating: ptr(0.0)}
	rated := withZero.ToMovie(now)
	require.NotNil(t, rated.Rating)
	raw, err := json.Marshal(rated)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rating":0`)

	withoutRating := CreateMovieDTO{Title: "T", Description: "d", ReleaseYear: ptr(2000)}
	unrated := withoutRating.ToMovie(now)
	assert.Nil(t, unrated.Rating)
	raw, err = json.Marshal(unrated)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"rating"`)
}

func TestUpdateMovieDTO_ToPatch(t *testing.T) {
	now := time.Now().UTC()

	t.Run("only supplied fields are set", func(t *testing.T) {
		in := UpdateMovieDTO{Title: ptr(" New title "), Rating: ptr(7.5)}
		p := in.ToPatch(models.ContentTypeMovie, now)

		require.NotNil(t, p.Title)
		assert.Equal(t, "New title", *p.Title)
		assert.Equal(t, 7.5, *p.Rating)
		assert.Nil(t, p.Description)
		assert.Nil(t, p.DownloadOptions)
		assert.Nil(t, p.Episodes)
		assert.False(t, p.UnsetEpisodes)
		assert.Equal(t, now, p.UpdatedAt)
	})

	t.Run("series becoming a movie unsets episodes", func(t *testing.T) {
		in := UpdateMovieDTO{ContentType: ptr("movie")}
		p := in.ToPatch(models.ContentTypeSeries, now)

		assert.True(t, p.UnsetEpisodes)
		assert.Nil(t, p.Episodes)
		assert.Equal(t, models.ContentTypeMovie, *p.ContentType)
	})

	t.Run("episodes sent for a movie are dropped", func(t *testing.T) {
		in := UpdateMovieDTO{Episodes: &[]EpisodeDTO{{Number: 1, Title: "x"}}}
		p := in.ToPatch(models.ContentTypeMovie, now)

		assert.True(t, p.UnsetEpisodes)
		assert.Nil(t, p.Episodes)
	})

	t.Run("series episodes replaced wholesale", func(t *testing.T) {
		in := UpdateMovieDTO{Episodes: &[]EpisodeDTO{{Number: 3, Title: "Three"}}}
		p := in.ToPatch(models.ContentTypeSeries, now)

		require.NotNil(t, p.Episodes)
		assert.Len(t, *p.Episodes, 1)
		assert.False(t, p.UnsetEpisodes)
	})
}

func TestMoviePatch_Apply(t *testing.T) {
	m := models.Movie{
		Title:       "Old",
		ContentType: models.ContentTypeSeries,
		Genre:       []string{"Drama", "Crime"},
		Episodes:    []models.Episode{{Number: 1, Title: "Pilot"}},
	}
	in := UpdateMovieDTO{
		Genre:       &[]string{"Comedy"},
		ContentType: ptr("movie"),
	}
	p := in.ToPatch(m.ContentType, time.Now())
	p.Apply(&m)

	assert.Equal(t, "Old", m.Title)
	assert.Equal(t, []string{"Comedy"}, m.Genre)
	assert.Equal(t, models.ContentTypeMovie, m.ContentType)
	assert.Nil(t, m.Episodes)
}
