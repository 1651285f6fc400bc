package pools

import (
	"context"
	"sort"

	"github.com/nilami/api-server/pkg/datastore"
)

// Pools are labels on players, not stored entities; everything here is
// derived from the player list.
type PoolsService struct {
	Store datastore.Store
}

func New(store datastore.Store) *PoolsService {
	return &PoolsService{Store: store}
}

func (s *PoolsService) ListPools(ctx context.Context) ([]string, error) {
	players, err := s.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	pools := make([]string, 0)
	for _, p := range players {
		if p.Pool == "" {
			continue
		}
		if _, ok := seen[p.Pool]; ok {
			continue
		}
		seen[p.Pool] = struct{}{}
		pools = append(pools, p.Pool)
	}
	sort.Strings(pools)
	return pools, nil
}

// PlayersByPool returns the players carrying the label. An unknown label is
// just an empty pool, not an error.
func (s *PoolsService) PlayersByPool(ctx context.Context, pool string) ([]datastore.Player, error) {
	players, err := s.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]datastore.Player, 0)
	for _, p := range players {
		if p.Pool == pool {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
