package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// movieID parses the :id path param. A malformed id can never match an
// entry, so it is reported as not found.
func movieID(c *gin.Context) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return bson.NilObjectID, utils.ErrNotFound
	}
	return id, nil
}

// GET /api/movies?sort=-createdAt
func (a *App) GetMovies() gin.HandlerFunc {
	return func(c *gin.Context) {
		sort := utils.ParseMovieSort(c.Query("sort"))
		movies, err := a.Movies.List(c.Request.Context(), sort)
		if err != nil {
			a.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, movies)
	}
}

// GET /api/movies/search?q=
func (a *App) SearchMovies() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Search query is required"})
			return
		}
		movies, err := a.Movies.Search(c.Request.Context(), q)
		if err != nil {
			a.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, movies)
	}
}

// GET /api/movies/:id
func (a *App) GetMovie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := movieID(c)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}
		movie, err := a.Movies.FindByID(c.Request.Context(), id)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}
		c.JSON(http.StatusOK, movie)
	}
}

// POST /api/movies
func (a *App) CreateMovie() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateMovieDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.respondError(c, bindingError(err))
			return
		}
		if err := utils.ValidateMovieCreate(&body); err != nil {
			a.respondError(c, err)
			return
		}
		if err := a.Schema.ValidateCreate(&body); err != nil {
			a.respondError(c, err)
			return
		}

		movie := body.ToMovie(time.Now().UTC())
		if err := a.Movies.Create(c.Request.Context(), &movie); err != nil {
			a.respondError(c, err)
			return
		}

		a.Metrics.RecordCatalogWrite("create")
		a.Logger.Info("movie created", zap.String("id", movie.ID.Hex()), zap.String("title", movie.Title))
		c.JSON(http.StatusCreated, movie)
	}
}

// PUT /api/movies/:id
func (a *App) UpdateMovie() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := movieID(c)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}

		current, err := a.Movies.FindByID(ctx, id)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}

		var body dto.UpdateMovieDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.respondError(c, bindingError(err))
			return
		}
		if err := utils.ValidateMovieUpdate(&body, current.ContentType); err != nil {
			a.respondError(c, err)
			return
		}
		if err := a.Schema.ValidateUpdate(&body, current.ContentType); err != nil {
			a.respondError(c, err)
			return
		}

		patch := body.ToPatch(current.ContentType, time.Now().UTC())
		updated, err := a.Movies.Update(ctx, id, patch)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}

		a.Metrics.RecordCatalogWrite("update")
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /api/movies/:id
func (a *App) DeleteMovie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := movieID(c)
		if err != nil {
			a.respondMovieError(c, err)
			return
		}
		if err := a.Movies.Delete(c.Request.Context(), id); err != nil {
			a.respondMovieError(c, err)
			return
		}

		a.Metrics.RecordCatalogWrite("delete")
		a.Logger.Info("movie deleted", zap.String("id", id.Hex()))
		c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
	}
}
