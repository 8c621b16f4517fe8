package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/wa-group-directory/internal/auth"
	"github.com/spec-kit/wa-group-directory/internal/config"
	"github.com/spec-kit/wa-group-directory/internal/domain"
	"github.com/spec-kit/wa-group-directory/internal/observability"
	"github.com/spec-kit/wa-group-directory/internal/persistence"
	"github.com/spec-kit/wa-group-directory/internal/repository"
)

// Seeds the single admin account. Admin accounts are provisioned only here;
// the API has no registration endpoint.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	username := getenvDefault("SEED_USERNAME", "raka20")
	password := getenvDefault("SEED_PASSWORD", "raka20")

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	user := &domain.User{Username: username, PasswordHash: hash}
	if err := users.Upsert(ctx, user); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	logger.Info("seeded admin user", zap.String("username", username), zap.Int64("id", user.ID))
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
