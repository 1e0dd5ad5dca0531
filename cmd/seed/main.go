package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"impactcore/internal/config"
	"impactcore/internal/database"
	"impactcore/internal/logging"
	"impactcore/internal/middleware"
	"impactcore/internal/model"
	"impactcore/internal/repository"
	"impactcore/internal/service"
)

type seeder struct {
	taxes  service.TaxService
	users  service.UserService
	logger *slog.Logger
}

// seedTaxRules inserts every default rule that is not already present.
// Existing rows are left as edited by admins.
func (s seeder) seedTaxRules(ctx context.Context, rules []service.StateTaxRuleRequest) (created int, err error) {
	for _, r := range rules {
		_, err := s.taxes.CreateTaxRule(ctx, r, nil)
		switch {
		case err == nil:
			created++
		case errors.Is(err, service.ErrAlreadyExists):
			s.logger.Debug("tax rule exists, skipping", "state", r.StateCode)
		default:
			return created, err
		}
	}
	return created, nil
}

func (s seeder) seedAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.users.CreateUser(ctx, service.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, service.ErrAlreadyExists) {
		s.logger.Info("admin user exists, skipping", "email", email)
		return nil
	}
	return err
}

func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("impactcore-seed", "development", "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup("impactcore-seed", cfg.Env, cfg.LogLevel)

	db, err := database.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)
	s := seeder{
		taxes:  service.NewTaxService(repository.NewStateTaxRuleRepository(db), auditRepo, txManager),
		users:  service.NewUserService(userRepo, repository.NewOrganizationRepository(db), middleware.NewAuth(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.IsProduction())),
		logger: logger,
	}

	ctx := context.Background()
	created, err := s.seedTaxRules(ctx, defaultTaxRules)
	if err != nil {
		logger.Error("seeding tax rules failed", "error", err)
		os.Exit(1)
	}
	logger.Info("tax rules seeded", "created", created, "total", len(defaultTaxRules))

	password := config.GetEnv("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		if cfg.IsProduction() {
			logger.Error("SEED_ADMIN_PASSWORD is required in production")
			os.Exit(1)
		}
		password = "admin123"
	}
	email := config.GetEnv("SEED_ADMIN_EMAIL", "admin@impactcore.local")
	if err := s.seedAdmin(ctx, "Administrator", email, password); err != nil {
		logger.Error("seeding admin failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete", "admin", email)
}
