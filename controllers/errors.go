package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/streamnexus/nexusbackend/middleware"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

const (
	serverErrorMessage    = "Server error"
	movieNotFoundMessage  = "Movie not found"
	invalidCredentialsMsg = "Invalid credentials"
)

// respondError maps an error to its HTTP response. Anything unclassified is
// logged and reported as a bare 500.
func (a *App) respondError(c *gin.Context, err error) {
	var (
		fieldErr  *utils.FieldError
		schemaErr *utils.SchemaError
		dupErr    *utils.DuplicateKeyError
	)
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": fieldErr.Message, "field": fieldErr.Field})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": schemaErr.Messages})
	case errors.As(err, &dupErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duplicate key error", "field": dupErr.Field})
	case errors.Is(err, utils.ErrDuplicateKey):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duplicate key error"})
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	default:
		_ = c.Error(err)
		a.Logger.Error("request failed",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": serverErrorMessage})
	}
}

func (a *App) respondMovieError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": movieNotFoundMessage})
		return
	}
	a.respondError(c, err)
}

// bindingError turns a ShouldBindJSON failure into a SchemaError.
func bindingError(err error) error {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, bindingMessage(fe))
		}
		return &utils.SchemaError{Messages: msgs}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &utils.SchemaError{Messages: []string{fmt.Sprintf("%s must be of type %s", field, typeErr.Type)}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &utils.SchemaError{Messages: []string{"Malformed JSON body"}}
	case errors.Is(err, io.EOF):
		return &utils.SchemaError{Messages: []string{"Request body is required"}}
	default:
		return &utils.SchemaError{Messages: []string{"Invalid request body"}}
	}
}

func bindingMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
