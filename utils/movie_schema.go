package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/models"
)

// movieSchema holds the structurally constrained fields of an entry,
// whether they come from a create or an update request.
type movieSchema struct {
	ReleaseYear     *int                    `json:"releaseYear" validate:"omitempty,min=1800,max=3000"`
	Rating          *float64                `json:"rating" validate:"omitempty,min=0,max=10"`
	ContentType     string                  `json:"contentType" validate:"omitempty,oneof=movie series"`
	DownloadOptions []dto.DownloadOptionDTO `json:"downloadOptions" validate:"dive"`
	Episodes        []dto.EpisodeDTO        `json:"episodes" validate:"dive"`
}

type SchemaValidator struct {
	validate *validator.Validate
}

func NewSchemaValidator() *SchemaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &SchemaValidator{validate: v}
}

func (s *SchemaValidator) ValidateCreate(in *dto.CreateMovieDTO) error {
	doc := movieSchema{
		ReleaseYear:     in.ReleaseYear,
		Rating:          in.Rating,
		ContentType:     strings.TrimSpace(in.ContentType),
		DownloadOptions: in.DownloadOptions,
	}
	if doc.ContentType == string(models.ContentTypeSeries) {
		doc.Episodes = in.Episodes
	}
	return s.check(&doc)
}

func (s *SchemaValidator) ValidateUpdate(in *dto.UpdateMovieDTO, current models.ContentType) error {
	doc := movieSchema{
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
	}
	if in.ContentType != nil {
		doc.ContentType = strings.TrimSpace(*in.ContentType)
	}
	if in.DownloadOptions != nil {
		doc.DownloadOptions = *in.DownloadOptions
	}
	if in.Episodes != nil && in.EffectiveContentType(current) == models.ContentTypeSeries {
		doc.Episodes = *in.Episodes
	}
	return s.check(&doc)
}

func (s *SchemaValidator) check(doc *movieSchema) error {
	err := s.validate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &SchemaError{Messages: []string{err.Error()}}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, schemaMessage(fe))
	}
	return &SchemaError{Messages: msgs}
}

func schemaMessage(fe validator.FieldError) string {
	// Namespace is "movieSchema.<path>"; drop the root.
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", path, strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s is invalid (%s)", path, fe.Tag())
	}
}
