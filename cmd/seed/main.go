package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/auth"
	"github.com/spec-kit/lead-intake-service/internal/config"
	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/observability"
	"github.com/spec-kit/lead-intake-service/internal/persistence"
	"github.com/spec-kit/lead-intake-service/internal/repository"
)

type seedUser struct {
	email     string
	canIntake bool
}

var seeds = []seedUser{
	{"attorney1@example.com", true},
	{"attorney2@example.com", true},
	{"attorney3@example.com", false},
	{"attorney4@example.com", false},
}

const seedPassword = "supersecure"

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

	users := repository.NewUserRepository(pg.PoolHandle())

	for _, seed := range seeds {
		if _, err := users.GetByEmail(ctx, seed.email); err == nil {
			logger.Warn("user already exists", zap.String("email", seed.email))
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("failed to look up user", zap.String("email", seed.email), zap.Error(err))
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash password", zap.Error(err))
		}

		user := &domain.User{
			Email:        seed.email,
			PasswordHash: hash,
			CanIntake:    seed.canIntake,
		}
		if err := users.Create(ctx, user); err != nil {
			logger.Fatal("failed to create user", zap.String("email", seed.email), zap.Error(err))
		}
		logger.Info("user created", zap.String("email", seed.email), zap.Bool("can_intake", seed.canIntake))
	}
}
