package dto

import (
	"strings"
	"time"

	"github.com/streamnexus/nexusbackend/models"
)

// DownloadOptionDTO is one entry of a movie's downloadOptions.
type DownloadOptionDTO struct {
	Quality string `json:"quality" validate:"omitempty,oneof=720p 1080p 4K default"`
	URL     string `json:"url"`
	Size    string `json:"size"`
}

// DownloadLinkDTO is one entry of an episode's downloadLinks. Quality is free text here.
type DownloadLinkDTO struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Size    string `json:"size"`
}

type EpisodeDTO struct {
	Number        int               `json:"number" validate:"min=1"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	DownloadLinks []DownloadLinkDTO `json:"downloadLinks"`
	Screenshot    string            `json:"screenshot"`
}

type CreateMovieDTO struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	ReleaseYear     *int                `json:"releaseYear"`
	Genre           []string            `json:"genre"`
	Rating          *float64            `json:"rating"`
	PosterURL       string              `json:"posterUrl"`
	DownloadURL     string              `json:"downloadUrl"`
	DownloadOptions []DownloadOptionDTO `json:"downloadOptions"`
	ContentType     string              `json:"contentType"`
	Episodes        []EpisodeDTO        `json:"episodes"`
	Screenshots     []string            `json:"screenshots"`
	FullName        string              `json:"fullName"`
	Language        string              `json:"language"`
	Size            string              `json:"size"`
	Source          string              `json:"source"`
	Cast            []string            `json:"cast"`
	Format          string              `json:"format"`
	Subtitle        string              `json:"subtitle"`
}

// UpdateMovieDTO has only optional fields. A supplied array replaces the
// stored one in full; nested arrays are never merged.
type UpdateMovieDTO struct {
	Title           *string              `json:"title,omitempty"`
	Description     *string              `json:"description,omitempty"`
	ReleaseYear     *int                 `json:"releaseYear,omitempty"`
	Genre           *[]string            `json:"genre,omitempty"`
	Rating          *float64             `json:"rating,omitempty"`
	PosterURL       *string              `json:"posterUrl,omitempty"`
	DownloadURL     *string              `json:"downloadUrl,omitempty"`
	DownloadOptions *[]DownloadOptionDTO `json:"downloadOptions,omitempty"`
	ContentType     *string              `json:"contentType,omitempty"`
	Episodes        *[]EpisodeDTO        `json:"episodes,omitempty"`
	Screenshots     *[]string            `json:"screenshots,omitempty"`
	FullName        *string              `json:"fullName,omitempty"`
	Language        *string              `json:"language,omitempty"`
	Size            *string              `json:"size,omitempty"`
	Source          *string              `json:"source,omitempty"`
	Cast            *[]string            `json:"cast,omitempty"`
	Format          *string              `json:"format,omitempty"`
	Subtitle        *string              `json:"subtitle,omitempty"`
}

// EffectiveContentType is the content type the entry will have once the
// update is applied on top of current.
func (u *UpdateMovieDTO) EffectiveContentType(current models.ContentType) models.ContentType {
	if u.ContentType != nil {
		return normalizeContentType(*u.ContentType)
	}
	if current == "" {
		return models.ContentTypeMovie
	}
	return current
}

func (d *CreateMovieDTO) ToMovie(now time.Time) models.Movie {
	m := models.Movie{
		Title:           strings.TrimSpace(d.Title),
		Description:     strings.TrimSpace(d.Description),
		Genre:           nonNil(d.Genre),
		PosterURL:       strings.TrimSpace(d.PosterURL),
		DownloadURL:     strings.TrimSpace(d.DownloadURL),
		DownloadOptions: downloadOptionsToModel(d.DownloadOptions),
		ContentType:     normalizeContentType(d.ContentType),
		Screenshots:     nonNil(d.Screenshots),
		FullName:        d.FullName,
		Language:        d.Language,
		Size:            d.Size,
		Source:          d.Source,
		Cast:            d.Cast,
		Format:          d.Format,
		Subtitle:        d.Subtitle,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if d.ReleaseYear != nil {
		m.ReleaseYear = *d.ReleaseYear
	}
	if d.Rating != nil {
		r := *d.Rating
		m.Rating = &r
	}
	if m.ContentType == models.ContentTypeSeries {
		m.Episodes = episodesToModel(d.Episodes)
	}
	return m
}

// ToPatch converts the request into a store patch. current is the stored
// content type, used to decide whether episodes are kept.
func (u *UpdateMovieDTO) ToPatch(current models.ContentType, now time.Time) models.MoviePatch {
	p := models.MoviePatch{
		Title:       trimmed(u.Title),
		Description: trimmed(u.Description),
		ReleaseYear: u.ReleaseYear,
		Genre:       u.Genre,
		Rating:      u.Rating,
		PosterURL:   trimmed(u.PosterURL),
		DownloadURL: trimmed(u.DownloadURL),
		Screenshots: u.Screenshots,
		FullName:    u.FullName,
		Language:    u.Language,
		Size:        u.Size,
		Source:      u.Source,
		Cast:        u.Cast,
		Format:      u.Format,
		Subtitle:    u.Subtitle,
		UpdatedAt:   now,
	}
	if u.DownloadOptions != nil {
		opts := downloadOptionsToModel(*u.DownloadOptions)
		p.DownloadOptions = &opts
	}
	if u.ContentType != nil {
		ct := normalizeContentType(*u.ContentType)
		p.ContentType = &ct
	}

	if u.EffectiveContentType(current) == models.ContentTypeSeries {
		if u.Episodes != nil {
			eps := episodesToModel(*u.Episodes)
			p.Episodes = &eps
		}
	} else if current == models.ContentTypeSeries || u.Episodes != nil {
		p.UnsetEpisodes = true
	}
	return p
}

func normalizeContentType(v string) models.ContentType {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.ContentTypeMovie
	}
	return models.ContentType(v)
}

func downloadOptionsToModel(in []DownloadOptionDTO) []models.DownloadOption {
	out := make([]models.DownloadOption, 0, len(in))
	for _, o := range in {
		out = append(out, models.DownloadOption{
			Quality: strings.TrimSpace(o.Quality),
			URL:     strings.TrimSpace(o.URL),
			Size:    o.Size,
		})
	}
	return out
}

func episodesToModel(in []EpisodeDTO) []models.Episode {
	out := make([]models.Episode, 0, len(in))
	for _, e := range in {
		links := make([]models.DownloadOption, 0, len(e.DownloadLinks))
		for _, l := range e.DownloadLinks {
			links = append(links, models.DownloadOption{
				Quality: strings.TrimSpace(l.Quality),
				URL:     strings.TrimSpace(l.URL),
				Size:    l.Size,
			})
		}
		out = append(out, models.Episode{
			Number:        e.Number,
			Title:         strings.TrimSpace(e.Title),
			Description:   e.Description,
			DownloadLinks: links,
			Screenshot:    e.Screenshot,
		})
	}
	return out
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
