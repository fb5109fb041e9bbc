package testutil

import (
	"testing"

	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/database"
)

// NewSQLite returns in-memory SQLite connections configured the same way as
// production. They are closed when the test completes.
func NewSQLite(t *testing.T) *database.Connections {
	t.Helper()

	conns, err := database.Open(config.Database{Driver: "sqlite", WriterDSN: ":memory:"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = conns.Close()
	})

	return conns
}
