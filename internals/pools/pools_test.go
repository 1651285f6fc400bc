package pools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilami/api-server/pkg/datastore"
)

func seed(t *testing.T, store datastore.Store, name, pool string) {
	t.Helper()
	_, err := store.CreatePlayer(context.Background(), datastore.Player{
		Name: name,
		Role: datastore.RoleBatsman,
		Pool: pool,
	})
	require.NoError(t, err)
}

func TestListPoolsDistinctSorted(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)

	seed(t, store, "A", "Pool B")
	seed(t, store, "B", "Pool A")
	seed(t, store, "C", "Pool B")
	seed(t, store, "D", "")

	pools, err := svc.ListPools(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Pool A", "Pool B"}, pools)
}

func TestPlayersByPool(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)

	seed(t, store, "A", "Pool A")
	seed(t, store, "B", "Pool B")
	seed(t, store, "C", "Pool A")

	got, err := svc.PlayersByPool(context.Background(), "Pool A")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		require.Equal(t, "Pool A", p.Pool)
	}

	empty, err := svc.PlayersByPool(context.Background(), "Pool Z")
	require.NoError(t, err)
	require.Empty(t, empty)
}
