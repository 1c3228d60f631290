// Command resetpassword sets a new password for an existing account.
//
//	resetpassword -username admin             # prompt twice, hidden
//	resetpassword -username admin -generate   # print a random password
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/sethvargo/go-password/password"
	"github.com/streamnexus/nexusbackend/cli"
	"github.com/streamnexus/nexusbackend/config"
	"github.com/streamnexus/nexusbackend/database"
	"github.com/streamnexus/nexusbackend/logger"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

const generatedLength = 20

func main() {
	username := flag.String("username", "", "account to update (defaults to ADMIN_USERNAME)")
	newPassword := flag.String("password", "", "new password; prompted when empty")
	generate := flag.Bool("generate", false, "generate a random password and print it")
	flag.Parse()

	cfg, err := config.LoadTooling()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl := logger.New(cfg.Log, cfg.Environment)
	defer func() { _ = zl.Sync() }()

	if *username == "" {
		*username = cfg.Admin.Username
	}

	pw, err := choosePassword(*newPassword, *generate)
	if err != nil {
		log.Fatalf("choose password: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := database.Open(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open stores", zap.Error(err))
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := resetPassword(ctx, st.Users, utils.NewPasswordHasher(cfg.Bcrypt.Cost), *username, pw); err != nil {
		zl.Error("reset password failed", zap.String("username", *username), zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}

	zl.Info("password updated", zap.String("username", *username))
	if *generate {
		fmt.Printf("New password for %s: %s\n", *username, pw)
	}
}

func choosePassword(flagValue string, generate bool) (string, error) {
	switch {
	case generate:
		return password.Generate(generatedLength, 4, 2, false, false)
	case flagValue != "":
		return flagValue, nil
	default:
		return cli.GetPassword(os.Stdout)
	}
}

func resetPassword(ctx context.Context, users database.UserStore, hasher *utils.PasswordHasher, username, pw string) error {
	if err := utils.CheckPasswordLength("password", pw); err != nil {
		return err
	}
	user, err := users.FindByUsername(ctx, utils.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return fmt.Errorf("user %q not found", username)
		}
		return err
	}
	hash, err := hasher.Hash(pw)
	if err != nil {
		return err
	}
	return users.UpdatePasswordHash(ctx, user.ID, hash)
}
