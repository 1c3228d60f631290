package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/streamnexus/nexusbackend/models"
	"go.uber.org/zap"
)

// AdminUserStore is the part of the credential store the bootstrap needs.
type AdminUserStore interface {
	AdminExists(ctx context.Context) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type BootstrapOutcome int

const (
	AdminAlreadyExists BootstrapOutcome = iota
	AdminCreated
	// AdminUsernameTaken: no admin exists but the bootstrap username is held
	// by another account, or a concurrent bootstrap won the insert.
	AdminUsernameTaken
)

func (o BootstrapOutcome) String() string {
	switch o {
	case AdminCreated:
		return "created"
	case AdminUsernameTaken:
		return "username_taken"
	default:
		return "already_exists"
	}
}

// EnsureAdmin creates the default admin when no admin account exists. Safe
// to call repeatedly and concurrently; the unique username index settles races.
func EnsureAdmin(ctx context.Context, users AdminUserStore, hasher *PasswordHasher, username, password string, logger *zap.Logger) (BootstrapOutcome, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return AdminAlreadyExists, errors.New("missing admin username or password")
	}

	exists, err := users.AdminExists(ctx)
	if err != nil {
		return AdminAlreadyExists, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		logger.Debug("admin user already exists")
		return AdminAlreadyExists, nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return AdminAlreadyExists, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		if IsDuplicateKey(err) {
			logger.Warn("admin bootstrap skipped: username already taken", zap.String("username", username))
			return AdminUsernameTaken, nil
		}
		return AdminAlreadyExists, fmt.Errorf("create admin: %w", err)
	}

	logger.Info("admin user seeded", zap.String("username", username))
	return AdminCreated, nil
}
