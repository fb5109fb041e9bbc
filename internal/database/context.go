package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Context is the storage handle handed to components that issue raw
// statements. It always targets the writer connection.
type Context struct {
	db *bun.DB
}

// NewContext wraps the writer connection of conns.
func NewContext(conns *Connections) *Context {
	return &Context{db: conns.Writer}
}

// Execute runs a parameterized statement. Placeholders are written as "?"
// and bound by bun for the active dialect.
func (c *Context) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// RetrieveValue runs a query returning a single scalar and scans it into dest.
func (c *Context) RetrieveValue(ctx context.Context, dest any, query string, args ...any) error {
	return c.db.QueryRowContext(ctx, query, args...).Scan(dest)
}

// Dialect reports which SQL dialect statements must be written in.
func (c *Context) Dialect() dialect.Name {
	return c.db.Dialect().Name()
}

// DB exposes the underlying bun handle.
func (c *Context) DB() *bun.DB {
	return c.db
}
