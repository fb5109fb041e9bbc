package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect"

	"github.com/Additional-Code/bidentry/internal/seeddata"
)

func TestCreateStatementPerDialect(t *testing.T) {
	sqlite := projectTable.createStatement(dialect.SQLite)
	assert.Contains(t, sqlite, `CREATE TABLE "project"`)
	assert.Contains(t, sqlite, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	assert.Contains(t, sqlite, `"name" VARCHAR(255) NOT NULL DEFAULT ''`)
	assert.Contains(t, sqlite, `"createdAt" DATETIME NOT NULL`)

	pg := proposalTable.createStatement(dialect.PG)
	assert.Contains(t, pg, `"id" INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY`)
	assert.Contains(t, pg, `"contactName" TEXT NOT NULL DEFAULT ''`)
	assert.Contains(t, pg, `"updatedAt" TIMESTAMP NOT NULL`)

	mysql := proposalTable.createStatement(dialect.MySQL)
	assert.Contains(t, mysql, "CREATE TABLE `proposal`")
	assert.Contains(t, mysql, "`id` INTEGER NOT NULL AUTO_INCREMENT PRIMARY KEY")
	assert.Contains(t, mysql, "`zip` VARCHAR(255) NOT NULL DEFAULT ''")
	assert.NotContains(t, mysql, "TEXT")
}

func TestZipColumnIsText(t *testing.T) {
	stmt := proposalTable.createStatement(dialect.SQLite)
	assert.Contains(t, stmt, `"zip" TEXT NOT NULL DEFAULT ''`)
}

func TestInsertStatementBindsDataColumnsOnly(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO "project" ("name", "createdAt", "updatedAt") VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		projectTable.insertStatement(dialect.SQLite))

	stmt := proposalTable.insertStatement(dialect.PG)
	assert.Equal(t, 8, countPlaceholders(stmt))
	assert.NotContains(t, stmt, "diversity")
	assert.NotContains(t, stmt, "union")
	assert.NotContains(t, stmt, "prevBidder")
}

func TestProposalRowsMatchPlaceholders(t *testing.T) {
	rows := proposalRows(nil)
	assert.Empty(t, rows)

	stmt := proposalTable.insertStatement(dialect.SQLite)
	rows = proposalRows(make([]seeddata.Proposal, 1))
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], countPlaceholders(stmt))
}

func TestExistsStatement(t *testing.T) {
	q, err := existsStatement(dialect.SQLite)
	require.NoError(t, err)
	assert.Contains(t, q, "sqlite_master")

	q, err = existsStatement(dialect.PG)
	require.NoError(t, err)
	assert.Contains(t, q, "current_schema()")

	q, err = existsStatement(dialect.MySQL)
	require.NoError(t, err)
	assert.Contains(t, q, "DATABASE()")

	_, err = existsStatement(dialect.MSSQL)
	require.Error(t, err)
}

func TestDropStatement(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "proposal"`, proposalTable.dropStatement(dialect.SQLite))
	assert.Equal(t, "DROP TABLE IF EXISTS `project`", projectTable.dropStatement(dialect.MySQL))
}

func countPlaceholders(stmt string) int {
	n := 0
	for _, r := range stmt {
		if r == '?' {
			n++
		}
	}
	return n
}
