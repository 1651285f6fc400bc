package auctions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

func ptr[T any](v T) *T { return &v }

func seedPlayer(t *testing.T, store datastore.Store, basePrice int64) datastore.Player {
	t.Helper()
	p, err := store.CreatePlayer(context.Background(), datastore.Player{
		Name:      "Lot",
		Role:      datastore.RoleBatsman,
		BasePrice: basePrice,
	})
	require.NoError(t, err)
	return p
}

func TestCreateAuctionDefaultsBidToBasePrice(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 2000)

	auction, err := svc.CreateAuction(ctx, CreateAuctionRequestBody{PlayerID: player.PlayerID})
	require.NoError(t, err)
	require.Equal(t, int64(2000), auction.CurrentBid)
	require.True(t, auction.IsActive)
	require.False(t, auction.IsCompleted)
	require.False(t, auction.StartedAt.IsZero())

	active, err := svc.GetActiveAuction(ctx)
	require.NoError(t, err)
	require.Equal(t, auction.AuctionID, active.AuctionID)
}

func TestCreateAuctionValidation(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 2000)
	var ve *validation.Error

	_, err := svc.CreateAuction(ctx, CreateAuctionRequestBody{})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "player_id", ve.Field)

	_, err = svc.CreateAuction(ctx, CreateAuctionRequestBody{PlayerID: "missing"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "player_id", ve.Field)

	_, err = svc.CreateAuction(ctx, CreateAuctionRequestBody{PlayerID: player.PlayerID, CurrentBid: 1500})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "current_bid", ve.Field)
}

func TestUpdateAuctionEnforcesBidFloor(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 2000)
	auction, err := svc.CreateAuction(ctx, CreateAuctionRequestBody{PlayerID: player.PlayerID})
	require.NoError(t, err)

	var ve *validation.Error
	_, err = svc.UpdateAuction(ctx, auction.AuctionID, datastore.AuctionPatch{CurrentBid: ptr(int64(1999))})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "current_bid", ve.Field)

	raised, err := svc.UpdateAuction(ctx, auction.AuctionID, datastore.AuctionPatch{CurrentBid: ptr(int64(2500))})
	require.NoError(t, err)
	require.Equal(t, int64(2500), raised.CurrentBid)
}

func TestUpdateAuctionChecksWinningTeam(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 1000)
	auction, err := svc.CreateAuction(ctx, CreateAuctionRequestBody{PlayerID: player.PlayerID})
	require.NoError(t, err)

	var ve *validation.Error
	_, err = svc.UpdateAuction(ctx, auction.AuctionID, datastore.AuctionPatch{WinningTeamID: ptr("missing")})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "winning_team_id", ve.Field)

	team, err := store.CreateTeam(ctx, datastore.Team{Name: "A", Budget: 5000})
	require.NoError(t, err)

	won, err := svc.UpdateAuction(ctx, auction.AuctionID, datastore.AuctionPatch{
		WinningTeamID: &team.TeamID,
		IsActive:      ptr(false),
		IsCompleted:   ptr(true),
	})
	require.NoError(t, err)
	require.Equal(t, team.TeamID, *won.WinningTeamID)
	require.NotNil(t, won.CompletedAt)

	_, err = svc.GetActiveAuction(ctx)
	require.ErrorIs(t, err, datastore.ErrNotFound)
}

func TestRecordSaleDenormalizesNames(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 1000)
	team, err := store.CreateTeam(ctx, datastore.Team{Name: "Mumbai", Budget: 5000})
	require.NoError(t, err)

	entry, err := svc.RecordSale(ctx, CreateAuctionLogRequestBody{
		PlayerID: player.PlayerID,
		TeamID:   team.TeamID,
		Price:    1500,
	})
	require.NoError(t, err)
	require.Equal(t, "Lot", entry.PlayerName)
	require.Equal(t, "Mumbai", entry.TeamName)
	require.Equal(t, int64(1500), entry.Price)

	logs, err := svc.ListAuctionLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestRecordSaleValidation(t *testing.T) {
	store := datastore.NewMemoryStore()
	svc := New(store)
	ctx := context.Background()

	player := seedPlayer(t, store, 1000)
	team, err := store.CreateTeam(ctx, datastore.Team{Name: "A", Budget: 5000})
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  CreateAuctionLogRequestBody
		field string
	}{
		{"missing player", CreateAuctionLogRequestBody{TeamID: team.TeamID, Price: 100}, "player_id"},
		{"missing team", CreateAuctionLogRequestBody{PlayerID: player.PlayerID, Price: 100}, "team_id"},
		{"zero price", CreateAuctionLogRequestBody{PlayerID: player.PlayerID, TeamID: team.TeamID}, "price"},
		{"unknown player", CreateAuctionLogRequestBody{PlayerID: "nope", TeamID: team.TeamID, Price: 100}, "player_id"},
		{"unknown team", CreateAuctionLogRequestBody{PlayerID: player.PlayerID, TeamID: "nope", Price: 100}, "team_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordSale(ctx, tc.body)
			var ve *validation.Error
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}
