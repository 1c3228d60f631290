package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/middleware"
	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

// POST /api/auth/register
func (a *App) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RegisterUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.respondError(c, bindingError(err))
			return
		}

		username := utils.NormalizeUsername(body.Username)
		if username == "" {
			a.respondError(c, &utils.FieldError{Field: "username", Message: "Username is required"})
			return
		}

		_, err := a.Users.FindByUsername(ctx, username)
		switch {
		case err == nil:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
			return
		case !errors.Is(err, utils.ErrNotFound):
			a.respondError(c, err)
			return
		}

		if err := utils.CheckPasswordLength("password", body.Password); err != nil {
			a.respondError(c, err)
			return
		}
		hash, err := a.Passwords.Hash(body.Password)
		if err != nil {
			a.respondError(c, err)
			return
		}

		user := &models.User{
			Username:     username,
			PasswordHash: hash,
			IsAdmin:      a.RegisterAsAdmin,
		}
		if err := a.Users.Create(ctx, user); err != nil {
			// lost the race against a concurrent registration
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
				return
			}
			a.respondError(c, err)
			return
		}

		a.Logger.Info("user registered", zap.String("username", user.Username), zap.Bool("is_admin", user.IsAdmin))
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// POST /api/auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			a.Metrics.RecordLogin(false)
			c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
			return
		}

		user, err := a.Users.FindByUsername(c.Request.Context(), utils.NormalizeUsername(body.Username))
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				a.Passwords.VerifyDummy(body.Password)
				a.Metrics.RecordLogin(false)
				c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
				return
			}
			a.respondError(c, err)
			return
		}

		ok, err := a.Passwords.Verify(body.Password, user.PasswordHash)
		if err != nil {
			a.respondError(c, err)
			return
		}
		if !ok {
			a.Metrics.RecordLogin(false)
			c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
			return
		}

		token, _, err := a.Tokens.IssueVersion(user.ID.Hex(), user.TokenVersion)
		if err != nil {
			a.respondError(c, err)
			return
		}

		a.Metrics.RecordLogin(true)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user.Public(),
		})
	}
}

// GET /api/auth/verify
func (a *App) Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or missing token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
	}
}

// POST /api/auth/logout
func (a *App) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or missing token"})
			return
		}
		if err := a.Tokens.Revoke(c.Request.Context(), claims); err != nil {
			a.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
