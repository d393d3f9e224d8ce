package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridoystarlord/ordermigrate/config"
)

// DB is the slice of *pgx.Conn the migrator needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Querier adds multi-row queries, used by catalog introspection and the store.
type Querier interface {
	DB
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Provider owns the single connection used for a run. It is not safe for
// concurrent use.
type Provider struct {
	cfg    config.Config
	conn   *pgx.Conn
	logger *slog.Logger
}

// NewProvider returns a provider for cfg. No connection is made until Acquire.
func NewProvider(cfg config.Config, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{cfg: cfg, logger: logger}
}

// Acquire returns the held connection, connecting first if there is none or
// the previous one was closed.
func (p *Provider) Acquire(ctx context.Context) (*pgx.Conn, error) {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}

	connCfg, err := p.connConfig()
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	p.conn = conn
	p.logger.Debug("database connection established", "host", connCfg.Host, "database", connCfg.Database)
	return conn, nil
}

// TestHealth acquires a connection and pings it. Failures are logged, not returned.
func (p *Provider) TestHealth(ctx context.Context) bool {
	conn, err := p.Acquire(ctx)
	if err != nil {
		p.logger.Error("connection test failed", "error", err)
		return false
	}
	if err := conn.Ping(ctx); err != nil {
		p.logger.Error("connection test failed", "error", err)
		return false
	}
	p.logger.Info("connection test succeeded")
	return true
}

// Release closes the held connection. It is safe to call when nothing is held.
func (p *Provider) Release(ctx context.Context) {
	if p.conn == nil {
		return
	}
	if err := p.conn.Close(ctx); err != nil {
		p.logger.Warn("error closing database connection", "error", err)
	} else {
		p.logger.Debug("database connection closed")
	}
	p.conn = nil
}

func (p *Provider) connConfig() (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	hasUser := urlHasUser(p.cfg.URL) || os.Getenv("PGUSER") != ""
	switch {
	case p.cfg.User != "":
		connCfg.User = p.cfg.User
	case !hasUser:
		connCfg.User = config.DefaultUser
	}
	switch {
	case p.cfg.Password != "":
		connCfg.Password = p.cfg.Password
	case connCfg.Password == "":
		connCfg.Password = config.DefaultPassword
	}
	if p.cfg.Schema != "" && p.cfg.Schema != "public" {
		connCfg.RuntimeParams["search_path"] = p.cfg.Schema
	}
	return connCfg, nil
}

// urlHasUser reports whether raw names a user. pgx fills in the OS user when
// none is given, so the parsed config cannot tell.
func urlHasUser(raw string) bool {
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		return u.User != nil && u.User.Username() != ""
	}
	for _, field := range strings.Fields(raw) {
		if strings.HasPrefix(field, "user=") && len(field) > len("user=") {
			return true
		}
	}
	return false
}
