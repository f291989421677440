package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockpoint/internal/catalog"
	"stockpoint/internal/config"
	"stockpoint/internal/database"
	"stockpoint/internal/domain"
	"stockpoint/internal/logger"
	"stockpoint/internal/repository"
	"stockpoint/internal/service"
	"stockpoint/internal/shell"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env for local runs before viper reads the environment
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting inventory tracker",
		zap.String("env", cfg.App.Env),
	)

	// Initialize database
	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Check database health
	log.Info("Database health check", zap.Any("health", database.Health(db)))

	// Run migrations
	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	// The interactive loop blocks on stdin; SIGINT/SIGTERM cancels the
	// context so database work in flight is abandoned cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accountRepo := repository.NewAccountRepository(db)
	accounts := service.NewAccountService(accountRepo, log)

	// Without any stored account there is nothing to log in with, so seed
	// the bootstrap administrator on first run.
	if err := seedAdmin(ctx, accountRepo, cfg.Admin, log); err != nil {
		log.Fatal("Failed to seed administrator account", zap.Error(err))
	}

	cat := catalog.New()

	s := shell.New(cat, accounts, os.Stdin, os.Stdout, log)
	if err := s.Run(ctx); err != nil {
		log.Fatal("Shell exited with error", zap.Error(err))
	}

	log.Info("Session ended")
}

func seedAdmin(ctx context.Context, repo repository.AccountRepository, cfg config.AdminConfig, log *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &domain.Account{
		Name:       cfg.Name,
		Email:      cfg.Email,
		Credential: cfg.Credential,
		Admin:      true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Warn("Seeded bootstrap administrator, change its credential after first login",
		zap.String("email", cfg.Email),
	)
	return nil
}
