package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ordermigrate/config"
	"github.com/ridoystarlord/ordermigrate/database"
)

// DatabaseURLEnv names the server used by integration tests.
const DatabaseURLEnv = "ORDERDB_TEST_DATABASE_URL"

// Postgres is a connection scoped to a throwaway schema.
type Postgres struct {
	Conn   *pgx.Conn
	Schema string
	Config config.Config
}

// NewPostgres creates a uniquely named schema on the test server and returns
// a connection whose search_path points at it. The schema is dropped when the
// test ends. The test is skipped when DatabaseURLEnv is unset.
func NewPostgres(t testing.TB) *Postgres {
	t.Helper()

	url := os.Getenv(DatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping integration test", DatabaseURLEnv)
	}

	ctx := context.Background()
	schemaName := "ordermigrate_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schemaName}.Sanitize())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+pgx.Identifier{schemaName}.Sanitize()+" CASCADE")
		_ = admin.Close(context.Background())
	})

	cfg := config.Config{URL: url, Schema: schemaName}
	provider := database.NewProvider(cfg, Logger())
	conn, err := provider.Acquire(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Release(context.Background()) })

	return &Postgres{Conn: conn, Schema: schemaName, Config: cfg}
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
