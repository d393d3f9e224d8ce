package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/ordermigrate/config"
	"github.com/ridoystarlord/ordermigrate/database"
	"github.com/ridoystarlord/ordermigrate/loader"
	"github.com/ridoystarlord/ordermigrate/migrator"
)

// session is the configuration and connection shared by one command run.
// Close must be deferred right after openSession succeeds.
type session struct {
	cfg      config.Config
	provider *database.Provider
	conn     *pgx.Conn
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if url := viper.GetString("database.url"); url != "" {
		cfg.URL = url
	}
	if schema := viper.GetString("database.schema"); schema != "" {
		cfg.Schema = schema
	}
	return cfg, nil
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	provider := database.NewProvider(cfg, logger)
	conn, err := provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, provider: provider, conn: conn}, nil
}

func (s *session) Close() {
	s.provider.Release(context.Background())
}

func (s *session) migrator() (*migrator.Migrator, error) {
	return newMigrator(s.cfg, s.conn)
}

// newMigrator builds a migrator for cfg. db may be nil when only the DDL plan
// is needed.
func newMigrator(cfg config.Config, db database.DB) (*migrator.Migrator, error) {
	opts := []migrator.Option{
		migrator.WithSchema(cfg.Schema),
		migrator.WithLogger(logger),
	}
	if cfg.SeedFile != "" {
		seed, err := loader.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("loading seed file: %w", err)
		}
		opts = append(opts, migrator.WithSeed(seed))
	}
	return migrator.New(db, opts...)
}
