package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePlayerLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.CreatePlayer(ctx, Player{Name: "Jos Buttler", Role: RoleWicketKeeper, Country: "England", BasePrice: 100000000})
	require.NoError(t, err)
	require.NotEmpty(t, created.PlayerID)
	require.Equal(t, StatusAvailable, created.Status)
	require.False(t, created.CreatedAt.IsZero())

	got, err := store.GetPlayer(ctx, created.PlayerID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	updated, err := store.UpdatePlayer(ctx, created.PlayerID, PlayerPatch{Country: ptr("India"), Points: ptr(103)})
	require.NoError(t, err)
	require.Equal(t, "India", updated.Country)
	require.Equal(t, 103, updated.Points)
	require.Equal(t, "Jos Buttler", updated.Name)

	deleted, err := store.DeletePlayer(ctx, created.PlayerID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.DeletePlayer(ctx, created.PlayerID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = store.GetPlayer(ctx, created.PlayerID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetPlayer(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdatePlayer(ctx, "nope", PlayerPatch{})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetTeam(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdateTeam(ctx, "nope", TeamPatch{})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetAuction(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdateAuction(ctx, "nope", AuctionPatch{})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetActiveAuction(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func sellPlayer(t *testing.T, store Store, playerID, teamID string, price int64) {
	t.Helper()
	_, err := store.UpdatePlayer(context.Background(), playerID, PlayerPatch{
		TeamID:    &teamID,
		SoldPrice: &price,
		Status:    ptr(StatusSold),
	})
	require.NoError(t, err)
}

func TestMemoryStoreSaleReconciliation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	team, err := store.CreateTeam(ctx, Team{Name: "Mumbai", Budget: 8000})
	require.NoError(t, err)
	require.Equal(t, int64(8000), team.RemainingBudget)
	require.Zero(t, team.PlayersCount)

	p1, err := store.CreatePlayer(ctx, Player{Name: "One", Role: RoleBatsman, Points: 80})
	require.NoError(t, err)
	p2, err := store.CreatePlayer(ctx, Player{Name: "Two", Role: RoleBowler, Points: 95})
	require.NoError(t, err)

	sellPlayer(t, store, p1.PlayerID, team.TeamID, 1500)
	sellPlayer(t, store, p2.PlayerID, team.TeamID, 2000)

	got, err := store.GetTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.Equal(t, int64(3500), got.TotalSpent)
	require.Equal(t, int64(4500), got.RemainingBudget)
	require.Equal(t, 2, got.PlayersCount)
	require.Equal(t, 175, got.TotalPoints)

	sold, err := store.GetPlayer(ctx, p1.PlayerID)
	require.NoError(t, err)
	require.Equal(t, StatusSold, sold.Status)
	require.Equal(t, team.TeamID, *sold.TeamID)
	require.Equal(t, int64(1500), *sold.SoldPrice)
}

func TestMemoryStoreReassignmentReconcilesBothTeams(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	teamA, err := store.CreateTeam(ctx, Team{Name: "A", Budget: 5000})
	require.NoError(t, err)
	teamB, err := store.CreateTeam(ctx, Team{Name: "B", Budget: 5000})
	require.NoError(t, err)

	p, err := store.CreatePlayer(ctx, Player{Name: "Mover", Role: RoleAllRounder, Points: 50})
	require.NoError(t, err)

	sellPlayer(t, store, p.PlayerID, teamA.TeamID, 1200)
	sellPlayer(t, store, p.PlayerID, teamB.TeamID, 1800)

	gotA, err := store.GetTeam(ctx, teamA.TeamID)
	require.NoError(t, err)
	require.Zero(t, gotA.PlayersCount)
	require.Zero(t, gotA.TotalSpent)
	require.Equal(t, int64(5000), gotA.RemainingBudget)

	gotB, err := store.GetTeam(ctx, teamB.TeamID)
	require.NoError(t, err)
	require.Equal(t, 1, gotB.PlayersCount)
	require.Equal(t, int64(1800), gotB.TotalSpent)
	require.Equal(t, int64(3200), gotB.RemainingBudget)
}

func TestMemoryStoreDetachResetsSaleFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	team, err := store.CreateTeam(ctx, Team{Name: "A", Budget: 5000})
	require.NoError(t, err)
	p, err := store.CreatePlayer(ctx, Player{Name: "Sold", Role: RoleBatsman})
	require.NoError(t, err)
	sellPlayer(t, store, p.PlayerID, team.TeamID, 2000)

	detached, err := store.UpdatePlayer(ctx, p.PlayerID, PlayerPatch{TeamID: ptr("")})
	require.NoError(t, err)
	require.Nil(t, detached.TeamID)
	require.Nil(t, detached.SoldPrice)
	require.Equal(t, StatusAvailable, detached.Status)

	got, err := store.GetTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.Zero(t, got.PlayersCount)
	require.Equal(t, int64(5000), got.RemainingBudget)
}

func TestMemoryStoreDeletePlayerReconcilesTeam(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	team, err := store.CreateTeam(ctx, Team{Name: "A", Budget: 5000})
	require.NoError(t, err)
	p, err := store.CreatePlayer(ctx, Player{Name: "Gone", Role: RoleBowler})
	require.NoError(t, err)
	sellPlayer(t, store, p.PlayerID, team.TeamID, 2500)

	deleted, err := store.DeletePlayer(ctx, p.PlayerID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := store.GetTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.Zero(t, got.PlayersCount)
	require.Zero(t, got.TotalSpent)
	require.Equal(t, int64(5000), got.RemainingBudget)
}

func TestMemoryStoreDeleteTeamReleasesPlayers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	team, err := store.CreateTeam(ctx, Team{Name: "Doomed", Budget: 5000})
	require.NoError(t, err)
	p1, err := store.CreatePlayer(ctx, Player{Name: "One", Role: RoleBatsman})
	require.NoError(t, err)
	p2, err := store.CreatePlayer(ctx, Player{Name: "Two", Role: RoleBowler})
	require.NoError(t, err)
	sellPlayer(t, store, p1.PlayerID, team.TeamID, 1000)
	sellPlayer(t, store, p2.PlayerID, team.TeamID, 1500)

	deleted, err := store.DeleteTeam(ctx, team.TeamID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = store.GetTeam(ctx, team.TeamID)
	require.ErrorIs(t, err, ErrNotFound)

	for _, id := range []string{p1.PlayerID, p2.PlayerID} {
		p, err := store.GetPlayer(ctx, id)
		require.NoError(t, err)
		require.Nil(t, p.TeamID)
		require.Nil(t, p.SoldPrice)
		require.Equal(t, StatusAvailable, p.Status)
	}
}

func TestMemoryStoreBudgetUpdateMovesRemaining(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	team, err := store.CreateTeam(ctx, Team{Name: "A", Budget: 5000})
	require.NoError(t, err)
	p, err := store.CreatePlayer(ctx, Player{Name: "One", Role: RoleBatsman})
	require.NoError(t, err)
	sellPlayer(t, store, p.PlayerID, team.TeamID, 2000)

	updated, err := store.UpdateTeam(ctx, team.TeamID, TeamPatch{Budget: ptr(int64(10000))})
	require.NoError(t, err)
	require.Equal(t, int64(10000), updated.Budget)
	require.Equal(t, int64(2000), updated.TotalSpent)
	require.Equal(t, int64(8000), updated.RemainingBudget)
	require.Equal(t, 1, updated.PlayersCount)
}

func TestMemoryStoreActiveAuction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, err := store.CreateAuction(ctx, Auction{PlayerID: "p1", CurrentBid: 100, IsActive: true})
	require.NoError(t, err)
	require.False(t, first.StartedAt.IsZero())

	second, err := store.CreateAuction(ctx, Auction{
		PlayerID:   "p2",
		CurrentBid: 200,
		IsActive:   true,
		StartedAt:  first.StartedAt.Add(1),
	})
	require.NoError(t, err)

	active, err := store.GetActiveAuction(ctx)
	require.NoError(t, err)
	require.Equal(t, second.AuctionID, active.AuctionID)

	completed, err := store.UpdateAuction(ctx, second.AuctionID, AuctionPatch{
		IsActive:      ptr(false),
		IsCompleted:   ptr(true),
		WinningTeamID: ptr("t1"),
	})
	require.NoError(t, err)
	require.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)
	require.Equal(t, "t1", *completed.WinningTeamID)

	active, err = store.GetActiveAuction(ctx)
	require.NoError(t, err)
	require.Equal(t, first.AuctionID, active.AuctionID)

	_, err = store.UpdateAuction(ctx, first.AuctionID, AuctionPatch{IsActive: ptr(false), IsCompleted: ptr(true)})
	require.NoError(t, err)

	_, err = store.GetActiveAuction(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreAuctionLogs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	logs, err := store.ListAuctionLogs(ctx)
	require.NoError(t, err)
	require.Empty(t, logs)

	created, err := store.CreateAuctionLog(ctx, AuctionLog{
		PlayerID:   "p1",
		PlayerName: "Jos Buttler",
		TeamID:     "t1",
		TeamName:   "Mumbai",
		Price:      150000000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.LogID)
	require.False(t, created.CreatedAt.IsZero())

	logs, err = store.ListAuctionLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, created, logs[0])
}
