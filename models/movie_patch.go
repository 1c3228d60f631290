package models

import "time"

// MoviePatch is a partial update. Nil fields are left untouched; non-nil
// slices replace the stored slice wholesale.
type MoviePatch struct {
	Title           *string
	Description     *string
	ReleaseYear     *int
	Genre           *[]string
	Rating          *float64
	PosterURL       *string
	DownloadURL     *string
	DownloadOptions *[]DownloadOption
	ContentType     *ContentType
	Episodes        *[]Episode
	UnsetEpisodes   bool
	Screenshots     *[]string
	FullName        *string
	Language        *string
	Size            *string
	Source          *string
	Cast            *[]string
	Format          *string
	Subtitle        *string
	UpdatedAt       time.Time
}

// Apply writes the patch onto m in place.
func (p *MoviePatch) Apply(m *Movie) {
	setIf(&m.Title, p.Title)
	setIf(&m.Description, p.Description)
	setIf(&m.ReleaseYear, p.ReleaseYear)
	setIf(&m.Genre, p.Genre)
	if p.Rating != nil {
		r := *p.Rating
		m.Rating = &r
	}
	setIf(&m.PosterURL, p.PosterURL)
	setIf(&m.DownloadURL, p.DownloadURL)
	setIf(&m.DownloadOptions, p.DownloadOptions)
	setIf(&m.ContentType, p.ContentType)
	setIf(&m.Episodes, p.Episodes)
	if p.UnsetEpisodes {
		m.Episodes = nil
	}
	setIf(&m.Screenshots, p.Screenshots)
	setIf(&m.FullName, p.FullName)
	setIf(&m.Language, p.Language)
	setIf(&m.Size, p.Size)
	setIf(&m.Source, p.Source)
	setIf(&m.Cast, p.Cast)
	setIf(&m.Format, p.Format)
	setIf(&m.Subtitle, p.Subtitle)
	if !p.UpdatedAt.IsZero() {
		m.UpdatedAt = p.UpdatedAt
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
