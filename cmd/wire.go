package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/medconnect/internal/adapters/credentials"
	filekv "github.com/bnema/medconnect/internal/adapters/kv/file"
	memorykv "github.com/bnema/medconnect/internal/adapters/kv/memory"
	sqlitekv "github.com/bnema/medconnect/internal/adapters/kv/sqlite"
	viewadapter "github.com/bnema/medconnect/internal/adapters/render/view"
	"github.com/bnema/medconnect/internal/adapters/repo/kvstore"
	"github.com/bnema/medconnect/internal/application"
	"github.com/bnema/medconnect/internal/config"
	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	tracker  *application.Tracker
	accounts *application.AccountService
	seeder   *application.Seeder
	seed     bool
	logger   logging.Logger

	renderMedicines func([]domain.Medicine) (string, error)
	renderStats     func(domain.AdherenceStats) (string, error)
	renderProfile   func(domain.Account, domain.AdherenceStats) (string, error)

	closeStore func() error
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store, closeStore, err := openStore(context.Background(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("wire %s store: %w", cfg.Store.Backend, err)
	}

	scheme, err := credentials.New(cfg.Credentials.Scheme, cfg.Credentials.BcryptCost)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("wire credential scheme: %w", err)
	}

	clock := ports.SystemClock{}
	ids := ports.UUIDGenerator{}
	accountRepo := kvstore.NewAccountRepository(store, logger)
	medicineRepo := kvstore.NewMedicineRepository(store, logger)
	sessionRepo := kvstore.NewSessionRepository(store, logger)

	accounts := application.NewAccountService(accountRepo, scheme, clock, ids)

	return &app{
		tracker: application.NewTracker(
			accounts,
			application.NewMedicineService(medicineRepo, clock, ids),
			application.NewSessionManager(sessionRepo, logger),
			logger,
		),
		accounts:        accounts,
		seeder:          application.NewSeeder(accountRepo, medicineRepo, scheme, clock, logger),
		seed:            cfg.Seed.Enabled,
		logger:          logger,
		renderMedicines: viewadapter.RenderMedicines,
		renderStats:     viewadapter.RenderStats,
		renderProfile:   viewadapter.RenderProfile,
		closeStore:      closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memorykv.NewStore(), noop, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		store, err := sqlitekv.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return filekv.NewStore(cfg.Path), noop, nil
	}
}

func (a *app) bootstrap(ctx context.Context) error {
	if !a.seed {
		return nil
	}

	if _, err := a.seeder.Seed(ctx); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	return nil
}

func (a *app) close() {
	if err := a.closeStore(); err != nil {
		a.logger.Warn(context.Background(), "close store", "error", err)
	}
}
