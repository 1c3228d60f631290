package controllers

import (
	"github.com/streamnexus/nexusbackend/database"
	"github.com/streamnexus/nexusbackend/metrics"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

// App carries the dependencies shared by every handler.
type App struct {
	Users     database.UserStore
	Movies    database.MovieStore
	Passwords *utils.PasswordHasher
	Tokens    *utils.TokenService
	Schema    *utils.SchemaValidator
	Logger    *zap.Logger
	Metrics   *metrics.Metrics

	// RegisterAsAdmin grants isAdmin to self-registered accounts.
	RegisterAsAdmin bool
}
