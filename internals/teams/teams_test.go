package teams

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

func ptr[T any](v T) *T { return &v }

func TestCreateTeamValidation(t *testing.T) {
	svc := New(datastore.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		body  CreateTeamRequestBody
		field string
	}{
		{"missing name", CreateTeamRequestBody{Budget: 8000}, "name"},
		{"zero budget", CreateTeamRequestBody{Name: "A"}, "budget"},
		{"negative budget", CreateTeamRequestBody{Name: "A", Budget: -10}, "budget"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTeam(ctx, tc.body)
			var ve *validation.Error
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestCreateTeamStartsWithFullBudget(t *testing.T) {
	svc := New(datastore.NewMemoryStore())

	team, err := svc.CreateTeam(context.Background(), CreateTeamRequestBody{Name: "Mumbai", Budget: 8000})
	require.NoError(t, err)
	require.NotEmpty(t, team.TeamID)
	require.Equal(t, int64(8000), team.RemainingBudget)
	require.Zero(t, team.TotalSpent)
	require.Zero(t, team.PlayersCount)
}

func TestUpdateTeamValidation(t *testing.T) {
	svc := New(datastore.NewMemoryStore())
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, CreateTeamRequestBody{Name: "A", Budget: 5000})
	require.NoError(t, err)

	var ve *validation.Error
	_, err = svc.UpdateTeam(ctx, team.TeamID, datastore.TeamPatch{Name: ptr("")})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "name", ve.Field)

	_, err = svc.UpdateTeam(ctx, team.TeamID, datastore.TeamPatch{Budget: ptr(int64(0))})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "budget", ve.Field)

	renamed, err := svc.UpdateTeam(ctx, team.TeamID, datastore.TeamPatch{Name: ptr("B")})
	require.NoError(t, err)
	require.Equal(t, "B", renamed.Name)
}

func TestDeleteTeam(t *testing.T) {
	svc := New(datastore.NewMemoryStore())
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, CreateTeamRequestBody{Name: "A", Budget: 5000})
	require.NoError(t, err)

	deleted, err := svc.DeleteTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = svc.DeleteTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.False(t, deleted)
}
