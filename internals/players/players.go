package players

import (
	"context"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

type PlayersService struct {
	Store datastore.Store
}

func New(store datastore.Store) *PlayersService {
	return &PlayersService{Store: store}
}

func validateStats(body CreatePlayerRequestBody) *validation.Error {
	checks := []struct {
		field string
		value int
	}{
		{"age", body.Age},
		{"matches", body.Matches},
		{"runs", body.Runs},
		{"wickets", body.Wickets},
		{"catches", body.Catches},
		{"points", body.Points},
	}
	for _, c := range checks {
		if c.value < 0 {
			return validation.Errorf(c.field, "must not be negative")
		}
	}
	return nil
}

func (s *PlayersService) CreatePlayer(ctx context.Context, body CreatePlayerRequestBody) (datastore.Player, error) {
	if body.Name == "" {
		return datastore.Player{}, validation.Errorf("name", "is required")
	}
	if !body.Role.Valid() {
		return datastore.Player{}, validation.Errorf("role", "must be one of Batsman, Bowler, All-rounder, Wicket-keeper")
	}
	if body.BasePrice < 0 {
		return datastore.Player{}, validation.Errorf("base_price", "must not be negative")
	}
	if body.Status != "" && !body.Status.Valid() {
		return datastore.Player{}, validation.Errorf("status", "must be one of Available, Sold, Unsold")
	}
	if err := validateStats(body); err != nil {
		return datastore.Player{}, err
	}
	if body.SoldPrice != nil {
		if *body.SoldPrice < 0 {
			return datastore.Player{}, validation.Errorf("sold_price", "must not be negative")
		}
		if body.TeamID == nil || *body.TeamID == "" {
			return datastore.Player{}, validation.Errorf("sold_price", "requires a team")
		}
	}

	return s.Store.CreatePlayer(ctx, datastore.Player{
		Name:      body.Name,
		Role:      body.Role,
		Country:   body.Country,
		Age:       body.Age,
		Matches:   body.Matches,
		Runs:      body.Runs,
		Wickets:   body.Wickets,
		Catches:   body.Catches,
		Points:    body.Points,
		BasePrice: body.BasePrice,
		Pool:      body.Pool,
		Status:    body.Status,
		SoldPrice: body.SoldPrice,
		TeamID:    body.TeamID,
	})
}

func (s *PlayersService) GetPlayer(ctx context.Context, id string) (datastore.Player, error) {
	return s.Store.GetPlayer(ctx, id)
}

func (s *PlayersService) ListPlayers(ctx context.Context, filters ListFilters) ([]datastore.Player, error) {
	if filters.Status != "" && !datastore.PlayerStatus(filters.Status).Valid() {
		return nil, validation.Errorf("status", "must be one of Available, Sold, Unsold")
	}
	if filters.Role != "" && !datastore.PlayerRole(filters.Role).Valid() {
		return nil, validation.Errorf("role", "must be one of Batsman, Bowler, All-rounder, Wicket-keeper")
	}

	all, err := s.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]datastore.Player, 0, len(all))
	for _, p := range all {
		if filters.Status != "" && string(p.Status) != filters.Status {
			continue
		}
		if filters.Role != "" && string(p.Role) != filters.Role {
			continue
		}
		if filters.Pool != "" && p.Pool != filters.Pool {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *PlayersService) UpdatePlayer(ctx context.Context, id string, patch datastore.PlayerPatch) (datastore.Player, error) {
	if patch.Name != nil && *patch.Name == "" {
		return datastore.Player{}, validation.Errorf("name", "must not be empty")
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return datastore.Player{}, validation.Errorf("role", "must be one of Batsman, Bowler, All-rounder, Wicket-keeper")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return datastore.Player{}, validation.Errorf("status", "must be one of Available, Sold, Unsold")
	}
	if patch.BasePrice != nil && *patch.BasePrice < 0 {
		return datastore.Player{}, validation.Errorf("base_price", "must not be negative")
	}
	if patch.SoldPrice != nil && *patch.SoldPrice < 0 {
		return datastore.Player{}, validation.Errorf("sold_price", "must not be negative")
	}

	// A sold price needs a team on the record: either the patch brings one or
	// the player already has one and the patch is not detaching.
	if patch.SoldPrice != nil {
		detaching := patch.TeamID != nil && *patch.TeamID == ""
		bringsTeam := patch.TeamID != nil && *patch.TeamID != ""
		if detaching {
			return datastore.Player{}, validation.Errorf("sold_price", "cannot be set while detaching from a team")
		}
		if !bringsTeam {
			current, err := s.Store.GetPlayer(ctx, id)
			if err != nil {
				return datastore.Player{}, err
			}
			if current.TeamID == nil {
				return datastore.Player{}, validation.Errorf("sold_price", "requires a team")
			}
		}
	}

	return s.Store.UpdatePlayer(ctx, id, patch)
}

func (s *PlayersService) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return s.Store.DeletePlayer(ctx, id)
}
