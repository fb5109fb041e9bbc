package cli_test

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Additional-Code/bidentry/internal/cli"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "bid-entry-api.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_WRITER_DSN", dsn)
	t.Setenv("OBS_LOG_LEVEL", "error")
	return dsn
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func count(t *testing.T, dsn, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestSeedCommandUsesBuiltInData(t *testing.T) {
	dsn := setupEnv(t)

	out, err := run(t, "seed", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "seed data applied")

	assert.Equal(t, 4, count(t, dsn, "project"))
	assert.Equal(t, 3, count(t, dsn, "proposal"))
}

func TestSeedCommandReadsFile(t *testing.T) {
	dsn := setupEnv(t)
	file := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(file, []byte("project:\n  - name: Only One\nproposal: []\n"), 0o600))

	_, err := run(t, "seed", "--quiet", "--file", file)
	require.NoError(t, err)

	assert.Equal(t, 1, count(t, dsn, "project"))
	assert.Equal(t, 0, count(t, dsn, "proposal"))
}

func TestSeedCommandStrictRejectsBadData(t *testing.T) {
	setupEnv(t)
	file := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(file, []byte("project: []\nproposal:\n  - companyName: X\n    zip: abc\n"), 0o600))

	_, err := run(t, "seed", "--quiet", "--strict", "--file", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Zip")
}

func TestMigrateUpAndVersion(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = run(t, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "migration version 1")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
