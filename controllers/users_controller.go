package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/middleware"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

// PUT /api/auth/password
//
// Every token issued before the change stops working: the presented one is
// revoked by id and the rest fail the token version check. A fresh token is
// returned.
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.respondError(c, bindingError(err))
			return
		}

		user, ok := middleware.CurrentUser(c)
		claims, okClaims := middleware.CurrentClaims(c)
		if !ok || !okClaims {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or missing token"})
			return
		}

		match, err := a.Passwords.Verify(body.CurrentPassword, user.PasswordHash)
		if err != nil {
			a.respondError(c, err)
			return
		}
		if !match {
			a.respondError(c, &utils.FieldError{Field: "currentPassword", Message: "Current password is incorrect"})
			return
		}

		if err := utils.CheckPasswordLength("newPassword", body.NewPassword); err != nil {
			a.respondError(c, err)
			return
		}
		newHash, err := a.Passwords.Hash(body.NewPassword)
		if err != nil {
			a.respondError(c, err)
			return
		}
		if err := a.Users.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
			a.respondError(c, err)
			return
		}

		if err := a.Tokens.Revoke(ctx, claims); err != nil {
			a.respondError(c, err)
			return
		}
		// the store bumped the token version; reload it for the new token
		updated, err := a.Users.FindByID(ctx, user.ID)
		if err != nil {
			a.respondError(c, err)
			return
		}
		token, _, err := a.Tokens.IssueVersion(updated.ID.Hex(), updated.TokenVersion)
		if err != nil {
			a.respondError(c, err)
			return
		}

		a.Logger.Info("password changed", zap.String("username", user.Username))
		c.JSON(http.StatusOK, gin.H{
			"message": "Password updated successfully",
			"token":   token,
		})
	}
}
