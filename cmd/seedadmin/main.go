// Command seedadmin creates (or resets) the initial admin account.
//
//	SEED_ADMIN_EMAIL=admin@example.com SEED_ADMIN_PASSWORD=... go run ./cmd/seedadmin
package main

import (
	"context"
	"errors"
	"os"

	"tindapos/internal/config"
	"tindapos/internal/infra"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}
	if name == "" {
		name = "Administrator"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = name
		existing.PasswordHash = string(hash)
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		if err := users.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Msg("failed to update admin")
		}
		log.Info().Str("email", email).Msg("admin account reset")
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin")
		}
		log.Info().Str("email", email).Msg("admin account created")
	default:
		log.Fatal().Err(err).Msg("failed to look up admin")
	}
}
