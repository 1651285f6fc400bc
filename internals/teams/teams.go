package teams

import (
	"context"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

type TeamsService struct {
	Store datastore.Store
}

func New(store datastore.Store) *TeamsService {
	return &TeamsService{Store: store}
}

func (s *TeamsService) CreateTeam(ctx context.Context, body CreateTeamRequestBody) (datastore.Team, error) {
	if body.Name == "" {
		return datastore.Team{}, validation.Errorf("name", "is required")
	}
	if body.Budget <= 0 {
		return datastore.Team{}, validation.Errorf("budget", "must be positive")
	}

	return s.Store.CreateTeam(ctx, datastore.Team{
		Name:   body.Name,
		Budget: body.Budget,
	})
}

func (s *TeamsService) GetTeam(ctx context.Context, id string) (datastore.Team, error) {
	return s.Store.GetTeam(ctx, id)
}

func (s *TeamsService) ListTeams(ctx context.Context) ([]datastore.Team, error) {
	return s.Store.ListTeams(ctx)
}

// UpdateTeam takes only name and budget; the derived statistics are owned by
// reconciliation and the handler rejects any attempt to write them.
func (s *TeamsService) UpdateTeam(ctx context.Context, id string, patch datastore.TeamPatch) (datastore.Team, error) {
	if patch.Name != nil && *patch.Name == "" {
		return datastore.Team{}, validation.Errorf("name", "must not be empty")
	}
	if patch.Budget != nil && *patch.Budget <= 0 {
		return datastore.Team{}, validation.Errorf("budget", "must be positive")
	}

	return s.Store.UpdateTeam(ctx, id, patch)
}

func (s *TeamsService) DeleteTeam(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteTeam(ctx, id)
}
