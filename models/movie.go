package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Download qualities accepted on Movie.DownloadOptions.
const (
	Quality720p    = "720p"
	Quality1080p   = "1080p"
	Quality4K      = "4K"
	QualityDefault = "default"
)

type DownloadOption struct {
	Quality string `bson:"quality" json:"quality"`
	URL     string `bson:"url" json:"url"`
	Size    string `bson:"size,omitempty" json:"size,omitempty"`
}

type Episode struct {
	Number        int              `bson:"number" json:"number"`
	Title         string           `bson:"title" json:"title"`
	Description   string           `bson:"description,omitempty" json:"description,omitempty"`
	DownloadLinks []DownloadOption `bson:"downloadLinks,omitempty" json:"downloadLinks,omitempty"`
	Screenshot    string           `bson:"screenshot,omitempty" json:"screenshot,omitempty"`
}

type Movie struct {
	ID              bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Title           string           `bson:"title" json:"title"`
	Description     string           `bson:"description" json:"description"`
	ReleaseYear     int              `bson:"releaseYear" json:"releaseYear"`
	Genre           []string         `bson:"genre" json:"genre"`
	Rating          *float64         `bson:"rating,omitempty" json:"rating,omitempty"` // nil when unrated
	PosterURL       string           `bson:"posterUrl,omitempty" json:"posterUrl,omitempty"`
	DownloadURL     string           `bson:"downloadUrl,omitempty" json:"downloadUrl,omitempty"`
	DownloadOptions []DownloadOption `bson:"downloadOptions" json:"downloadOptions"`
	ContentType     ContentType      `bson:"contentType" json:"contentType"`
	Episodes        []Episode        `bson:"episodes,omitempty" json:"episodes,omitempty"`
	Screenshots     []string         `bson:"screenshots" json:"screenshots"`

	FullName string   `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Language string   `bson:"language,omitempty" json:"language,omitempty"`
	Size     string   `bson:"size,omitempty" json:"size,omitempty"`
	Source   string   `bson:"source,omitempty" json:"source,omitempty"`
	Cast     []string `bson:"cast,omitempty" json:"cast,omitempty"`
	Format   string   `bson:"format,omitempty" json:"format,omitempty"`
	Subtitle string   `bson:"subtitle,omitempty" json:"subtitle,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsSeries reports whether episodes are meaningful for this entry.
func (m *Movie) IsSeries() bool {
	return m.ContentType == ContentTypeSeries
}
