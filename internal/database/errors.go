package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	pgUndefinedTable       = "42P01"
	mysqlNoSuchTable uint16 = 1146
)

// IsUndefinedTable reports whether err means the queried table does not
// exist, which is the state of a database that was never migrated or seeded.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUndefinedTable
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoSuchTable
	}

	// modernc.org/sqlite reports SQLITE_ERROR with the detail in the message.
	return strings.Contains(err.Error(), "no such table")
}
