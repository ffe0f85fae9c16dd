package memstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/dictcache"
	"github.com/unkn0wn-root/dictcache/hashstore"
)

func TestInsertFillsDefaults(t *testing.T) {
	s := New()
	e, err := s.Insert(context.Background(), dictcache.Entry{Type: "gender", Code: "m"})
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, dictcache.StatusValid, e.Status)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestGetAllFiltersStatusAndOrders(t *testing.T) {
	s := New(
		dictcache.Entry{ID: "3", Type: "A", SortOrder: 2},
		dictcache.Entry{ID: "1", Type: "A", SortOrder: 1},
		dictcache.Entry{ID: "x", Type: "B", SortOrder: 0, Status: 9},
		dictcache.Entry{ID: "2", Type: "B", SortOrder: 1},
	)

	got, err := s.GetAll(context.Background(), dictcache.Entry{})
	require.NoError(t, err)
	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	got, err = s.GetAll(context.Background(), dictcache.Entry{Status: 9})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestGetAllHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GetAll(ctx, dictcache.Entry{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceOverMemstore(t *testing.T) {
	ctx := context.Background()
	st := New(
		dictcache.Entry{Type: "gender", Code: "m", SortOrder: 1},
		dictcache.Entry{Type: "gender", Code: "f", SortOrder: 2},
		dictcache.Entry{Type: "status", Code: "on", SortOrder: 1},
	)
	svc, err := dictcache.New(dictcache.Options{Store: st, HashStore: hashstore.NewMemory()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(ctx) })

	require.NoError(t, svc.RefreshNow(ctx, dictcache.Entry{}))
	all := svc.GetAllGrouped(ctx)
	require.Len(t, all, 2)
	require.Len(t, all["gender"], 2)
	assert.Equal(t, "m", all["gender"][0].Code)
	assert.Equal(t, "f", all["gender"][1].Code)
}
