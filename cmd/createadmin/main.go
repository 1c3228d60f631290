// Command createadmin creates the configured admin account. When the
// username already exists it offers to reset that account's password.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/streamnexus/nexusbackend/cli"
	"github.com/streamnexus/nexusbackend/config"
	"github.com/streamnexus/nexusbackend/database"
	"github.com/streamnexus/nexusbackend/logger"
	"github.com/streamnexus/nexusbackend/models"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

func main() {
	prompt := flag.Bool("prompt", false, "read the admin password from the terminal instead of ADMIN_PASSWORD")
	yes := flag.Bool("yes", false, "reset the password of an existing account without asking")
	flag.Parse()

	cfg, err := config.LoadTooling()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl := logger.New(cfg.Log, cfg.Environment)
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, zl, *prompt, *yes); err != nil {
		zl.Error("createadmin failed", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger, prompt, yes bool) error {
	password := cfg.Admin.Password
	if prompt {
		p, err := cli.GetPassword(os.Stdout)
		if err != nil {
			return err
		}
		password = p
	}

	st, err := database.Open(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	return createOrReset(ctx, st.Users, utils.NewPasswordHasher(cfg.Bcrypt.Cost), cfg.Admin.Username, password,
		func() (bool, error) {
			if yes {
				return true, nil
			}
			return cli.AskYesNo(bufio.NewReader(os.Stdin), os.Stdout, "User already exists. Reset its password?")
		}, zl)
}

// createOrReset creates username as an admin, or when it exists asks
// confirm whether to overwrite its password.
func createOrReset(ctx context.Context, users database.UserStore, hasher *utils.PasswordHasher, username, password string, confirm func() (bool, error), zl *zap.Logger) error {
	username = utils.NormalizeUsername(username)
	if username == "" || password == "" {
		return errors.New("admin username and password must not be empty")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	existing, err := users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		admin := &models.User{Username: username, PasswordHash: hash, IsAdmin: true}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		zl.Info("admin user created", zap.String("username", username))
		return nil
	case err != nil:
		return fmt.Errorf("find user: %w", err)
	}

	ok, err := confirm()
	if err != nil {
		return err
	}
	if !ok {
		zl.Info("left existing user unchanged", zap.String("username", username))
		return nil
	}
	if err := users.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	zl.Info("password reset", zap.String("username", username), zap.Bool("is_admin", existing.IsAdmin))
	return nil
}
