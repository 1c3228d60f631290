package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/utils"
)

// GET /api/convert-drive-link?url=
func (a *App) ConvertDriveLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		link, err := utils.ConvertDriveLink(c.Query("url"))
		switch {
		case errors.Is(err, utils.ErrInvalidDriveURL):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Google Drive URL"})
			return
		case errors.Is(err, utils.ErrDriveIDNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not extract file ID from URL"})
			return
		case err != nil:
			a.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// GET /api/health
func (a *App) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}
