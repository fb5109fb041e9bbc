package seeder

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect"
)

type columnKind int

const (
	kindVarchar columnKind = iota
	kindText
	kindTimestamp
)

type column struct {
	name string
	kind columnKind
}

// table describes one seeded table. Every table gets an auto-increment id
// first; timestamp columns are filled by the database at insert time.
type table struct {
	name    string
	columns []column
}

var projectTable = table{
	name: "project",
	columns: []column{
		{name: "name", kind: kindVarchar},
		{name: "createdAt", kind: kindTimestamp},
		{name: "updatedAt", kind: kindTimestamp},
	},
}

var proposalTable = table{
	name: "proposal",
	columns: []column{
		{name: "companyName", kind: kindVarchar},
		{name: "contactName", kind: kindText},
		{name: "address", kind: kindVarchar},
		{name: "city", kind: kindText},
		{name: "state", kind: kindText},
		{name: "zip", kind: kindText},
		{name: "emailAddress", kind: kindText},
		{name: "phoneNumber", kind: kindVarchar},
		{name: "createdAt", kind: kindTimestamp},
		{name: "updatedAt", kind: kindTimestamp},
	},
}

func quote(d dialect.Name, ident string) string {
	if d == dialect.MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

func existsStatement(d dialect.Name) (string, error) {
	switch d {
	case dialect.SQLite:
		return `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`, nil
	case dialect.PG:
		return `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?)`, nil
	case dialect.MySQL:
		return `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?)`, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s", d)
	}
}

func (t table) dropStatement(d dialect.Name) string {
	return "DROP TABLE IF EXISTS " + quote(d, t.name)
}

func (t table) createStatement(d dialect.Name) string {
	defs := make([]string, 0, len(t.columns)+1)
	defs = append(defs, quote(d, "id")+" "+idType(d))
	for _, c := range t.columns {
		defs = append(defs, quote(d, c.name)+" "+columnType(d, c.kind))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", quote(d, t.name), strings.Join(defs, ",\n\t"))
}

// insertStatement binds one placeholder per non-timestamp column, in
// declaration order.
func (t table) insertStatement(d dialect.Name) string {
	names := make([]string, 0, len(t.columns))
	values := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, quote(d, c.name))
		if c.kind == kindTimestamp {
			values = append(values, "CURRENT_TIMESTAMP")
		} else {
			values = append(values, "?")
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(d, t.name), strings.Join(names, ", "), strings.Join(values, ", "))
}

func idType(d dialect.Name) string {
	switch d {
	case dialect.PG:
		return "INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	case dialect.MySQL:
		return "INTEGER NOT NULL AUTO_INCREMENT PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func columnType(d dialect.Name, kind columnKind) string {
	switch kind {
	case kindTimestamp:
		if d == dialect.PG {
			return "TIMESTAMP NOT NULL"
		}
		return "DATETIME NOT NULL"
	case kindText:
		// MySQL cannot put a default on TEXT.
		if d == dialect.MySQL {
			return "VARCHAR(255) NOT NULL DEFAULT ''"
		}
		return "TEXT NOT NULL DEFAULT ''"
	default:
		return "VARCHAR(255) NOT NULL DEFAULT ''"
	}
}
