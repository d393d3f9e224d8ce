package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config path is given. It is optional.
const DefaultFile = "ordermigrate.yaml"

// Principal and credential used when neither the URL nor any other source
// supplies one.
const (
	DefaultUser     = "postgres"
	DefaultPassword = "password"
)

// Config is the connection target and the few knobs the migrator reads.
type Config struct {
	URL      string `env:"ORDERDB_URL"`
	User     string `env:"ORDERDB_USER"`
	Password string `env:"ORDERDB_PASSWORD"`
	Schema   string `env:"ORDERDB_SCHEMA"`
	SeedFile string `env:"ORDERDB_SEED_FILE"`
}

type legacyEnv struct {
	DatabaseURL string `env:"DATABASE_URL"`
}

type fileConfig struct {
	Database struct {
		URL      string `yaml:"url"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Schema   string `yaml:"schema"`
	} `yaml:"database"`
	SeedFile string `yaml:"seed_file"`
}

// Default returns the values used when nothing else is configured. User and
// Password stay empty so credentials in the URL are kept; the connection
// falls back to DefaultUser and DefaultPassword only when none are given.
func Default() Config {
	return Config{
		URL:    "postgres://localhost:5432/order_db",
		Schema: "public",
	}
}

// Load resolves configuration from defaults, the YAML file at path, a .env
// file and the process environment, in increasing order of precedence.
// An empty path means DefaultFile, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := applyFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config file found, using defaults", "path", path)
		} else {
			return Config{}, err
		}
	}

	LoadEnv()

	var legacy legacyEnv
	if err := env.Parse(&legacy); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if legacy.DatabaseURL != "" {
		cfg.URL = legacy.DatabaseURL
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.URL == "" {
		return Config{}, errors.New("database url is empty")
	}
	if cfg.Schema == "" {
		cfg.Schema = "public"
	}
	return cfg, nil
}

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already present in the environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, continuing")
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("unmarshalling config file %s: %w", path, err)
	}

	if fc.Database.URL != "" {
		cfg.URL = fc.Database.URL
	}
	if fc.Database.User != "" {
		cfg.User = fc.Database.User
	}
	if fc.Database.Password != "" {
		cfg.Password = fc.Database.Password
	}
	if fc.Database.Schema != "" {
		cfg.Schema = fc.Database.Schema
	}
	if fc.SeedFile != "" {
		cfg.SeedFile = fc.SeedFile
	}
	return nil
}
