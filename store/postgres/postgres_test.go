package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/dictcache"
)

// openTestStore connects to DATABASE_URL inside a transaction that is rolled
// back on cleanup. Skips when DATABASE_URL is not set.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	s := New(tx)
	require.NoError(t, s.EnsureSchema(ctx))
	_, err = tx.Exec(ctx, "DELETE FROM sys_dict")
	require.NoError(t, err)
	return s
}

func TestInsertAndGetAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, e := range []dictcache.Entry{
		{Type: "gender", Code: "f", Value: "female", SortOrder: 2},
		{Type: "gender", Code: "m", Value: "male", Label: "Male", SortOrder: 1},
		{Type: "status", Code: "off", Value: "0", SortOrder: 1, Status: dictcache.StatusDisabled + 5},
	} {
		e.CreatedAt = base.Add(time.Duration(i) * time.Second)
		got, err := s.Insert(ctx, e)
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.UpdatedAt.IsZero())
	}

	got, err := s.GetAll(ctx, dictcache.Entry{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m", got[0].Code)
	assert.Equal(t, "Male", got[0].Label)
	assert.Equal(t, "f", got[1].Code)
	assert.Equal(t, "", got[1].Label)

	got, err = s.GetAll(ctx, dictcache.Entry{Status: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "off", got[0].Code)
}

func TestInsertDuplicateCodeFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := dictcache.Entry{ID: fmt.Sprintf("dup-%d", time.Now().UnixNano()), Type: "gender", Code: "m"}
	_, err := s.Insert(ctx, e)
	require.NoError(t, err)

	e.ID += "-2"
	_, err = s.Insert(ctx, e)
	require.Error(t, err)
}

// compile-time: every pgx handle we hand out satisfies DBTX
var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (*pgx.Conn)(nil)
	_ DBTX = (pgx.Tx)(nil)
)
