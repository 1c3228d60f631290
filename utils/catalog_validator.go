package utils

import (
	"fmt"
	"strings"

	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/models"
)

// ValidateMovieCreate applies the catalog rules to a new entry and returns
// the first violation as a *FieldError.
func ValidateMovieCreate(in *dto.CreateMovieDTO) error {
	if isBlank(in.Title) {
		return &FieldError{Field: "title", Message: "Title is required"}
	}
	if isBlank(in.Description) {
		return &FieldError{Field: "description", Message: "Description is required"}
	}
	if in.ReleaseYear == nil {
		return &FieldError{Field: "releaseYear", Message: "Release year is required"}
	}
	if err := validateDownloadOptions(in.DownloadOptions); err != nil {
		return err
	}
	if strings.TrimSpace(in.ContentType) == string(models.ContentTypeSeries) {
		return validateEpisodes(in.Episodes)
	}
	return nil
}

// ValidateMovieUpdate applies the same rules to the fields an update
// supplies. current is the stored content type of the entry.
func ValidateMovieUpdate(in *dto.UpdateMovieDTO, current models.ContentType) error {
	if in.Title != nil && isBlank(*in.Title) {
		return &FieldError{Field: "title", Message: "Title is required"}
	}
	if in.Description != nil && isBlank(*in.Description) {
		return &FieldError{Field: "description", Message: "Description is required"}
	}
	if in.DownloadOptions != nil {
		if err := validateDownloadOptions(*in.DownloadOptions); err != nil {
			return err
		}
	}
	if in.Episodes != nil && in.EffectiveContentType(current) == models.ContentTypeSeries {
		return validateEpisodes(*in.Episodes)
	}
	return nil
}

func validateDownloadOptions(opts []dto.DownloadOptionDTO) error {
	for i, o := range opts {
		if isBlank(o.URL) {
			return &FieldError{
				Field:   fmt.Sprintf("downloadOptions[%d].url", i),
				Message: "Download option URL is required",
			}
		}
		if isBlank(o.Quality) {
			return &FieldError{
				Field:   fmt.Sprintf("downloadOptions[%d].quality", i),
				Message: "Download option quality is required",
			}
		}
	}
	return nil
}

func validateEpisodes(eps []dto.EpisodeDTO) error {
	for i, ep := range eps {
		if isBlank(ep.Title) {
			return &FieldError{
				Field:   fmt.Sprintf("episodes[%d].title", i),
				Message: "Episode title is required",
			}
		}
		if ep.Number == 0 {
			return &FieldError{
				Field:   fmt.Sprintf("episodes[%d].number", i),
				Message: "Episode number is required",
			}
		}
		for j, l := range ep.DownloadLinks {
			if isBlank(l.URL) {
				return &FieldError{
					Field:   fmt.Sprintf("episodes[%d].downloadLinks[%d].url", i, j),
					Message: "Episode download link URL is required",
				}
			}
			if isBlank(l.Quality) {
				return &FieldError{
					Field:   fmt.Sprintf("episodes[%d].downloadLinks[%d].quality", i, j),
					Message: "Episode download link quality is required",
				}
			}
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
