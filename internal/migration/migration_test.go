package migration

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunCreatesAndSeeds(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, NewRunner().Run(ctx, db))

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM shuku_details`))
	assert.Equal(t, 27, count)

	var name string
	require.NoError(t, db.GetContext(ctx, &name, `SELECT name FROM shuku_details WHERE id = 1`))
	assert.Equal(t, "婁宿", name)
}

func TestRunIsIdempotentAndKeepsEdits(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	runner := NewRunner()

	require.NoError(t, runner.Run(ctx, db))
	_, err := db.ExecContext(ctx, `UPDATE shuku_details SET fortune = 'edited' WHERE id = 2`)
	require.NoError(t, err)

	require.NoError(t, runner.Run(ctx, db))

	var fortune string
	require.NoError(t, db.GetContext(ctx, &fortune, `SELECT fortune FROM shuku_details WHERE id = 2`))
	assert.Equal(t, "edited", fortune)
	assert.Equal(t, "1.0.0", runner.Version())
}
