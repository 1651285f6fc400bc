package auctions

import (
	"context"
	"errors"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

type AuctionsService struct {
	Store datastore.Store
}

func New(store datastore.Store) *AuctionsService {
	return &AuctionsService{Store: store}
}

// CreateAuction opens bidding for a player. A zero bid means "start at the
// base price"; anything below the base price is rejected.
func (s *AuctionsService) CreateAuction(ctx context.Context, body CreateAuctionRequestBody) (datastore.Auction, error) {
	if body.PlayerID == "" {
		return datastore.Auction{}, validation.Errorf("player_id", "is required")
	}
	if body.CurrentBid < 0 {
		return datastore.Auction{}, validation.Errorf("current_bid", "must not be negative")
	}

	player, err := s.Store.GetPlayer(ctx, body.PlayerID)
	if errors.Is(err, datastore.ErrNotFound) {
		return datastore.Auction{}, validation.Errorf("player_id", "player %s not found", body.PlayerID)
	}
	if err != nil {
		return datastore.Auction{}, err
	}

	bid := body.CurrentBid
	if bid == 0 {
		bid = player.BasePrice
	}
	if bid < player.BasePrice {
		return datastore.Auction{}, validation.Errorf("current_bid", "must be at least the base price")
	}

	return s.Store.CreateAuction(ctx, datastore.Auction{
		PlayerID:   body.PlayerID,
		CurrentBid: bid,
		IsActive:   true,
	})
}

func (s *AuctionsService) GetAuction(ctx context.Context, id string) (datastore.Auction, error) {
	return s.Store.GetAuction(ctx, id)
}

func (s *AuctionsService) GetActiveAuction(ctx context.Context) (datastore.Auction, error) {
	return s.Store.GetActiveAuction(ctx)
}

func (s *AuctionsService) ListAuctions(ctx context.Context) ([]datastore.Auction, error) {
	return s.Store.ListAuctions(ctx)
}

func (s *AuctionsService) UpdateAuction(ctx context.Context, id string, patch datastore.AuctionPatch) (datastore.Auction, error) {
	if patch.CurrentBid != nil {
		if *patch.CurrentBid < 0 {
			return datastore.Auction{}, validation.Errorf("current_bid", "must not be negative")
		}

		auction, err := s.Store.GetAuction(ctx, id)
		if err != nil {
			return datastore.Auction{}, err
		}
		player, err := s.Store.GetPlayer(ctx, auction.PlayerID)
		if err != nil && !errors.Is(err, datastore.ErrNotFound) {
			return datastore.Auction{}, err
		}
		// The floor only applies while the player still exists.
		if err == nil && *patch.CurrentBid < player.BasePrice {
			return datastore.Auction{}, validation.Errorf("current_bid", "must be at least the base price")
		}
	}

	if patch.WinningTeamID != nil && *patch.WinningTeamID != "" {
		_, err := s.Store.GetTeam(ctx, *patch.WinningTeamID)
		if errors.Is(err, datastore.ErrNotFound) {
			return datastore.Auction{}, validation.Errorf("winning_team_id", "team %s not found", *patch.WinningTeamID)
		}
		if err != nil {
			return datastore.Auction{}, err
		}
	}

	return s.Store.UpdateAuction(ctx, id, patch)
}

func (s *AuctionsService) DeleteAuction(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteAuction(ctx, id)
}

// RecordSale appends an immutable auction-log entry. Player and team names
// are copied in at write time so the log reads the same after renames.
func (s *AuctionsService) RecordSale(ctx context.Context, body CreateAuctionLogRequestBody) (datastore.AuctionLog, error) {
	if body.PlayerID == "" {
		return datastore.AuctionLog{}, validation.Errorf("player_id", "is required")
	}
	if body.TeamID == "" {
		return datastore.AuctionLog{}, validation.Errorf("team_id", "is required")
	}
	if body.Price <= 0 {
		return datastore.AuctionLog{}, validation.Errorf("price", "must be positive")
	}

	player, err := s.Store.GetPlayer(ctx, body.PlayerID)
	if errors.Is(err, datastore.ErrNotFound) {
		return datastore.AuctionLog{}, validation.Errorf("player_id", "player %s not found", body.PlayerID)
	}
	if err != nil {
		return datastore.AuctionLog{}, err
	}

	team, err := s.Store.GetTeam(ctx, body.TeamID)
	if errors.Is(err, datastore.ErrNotFound) {
		return datastore.AuctionLog{}, validation.Errorf("team_id", "team %s not found", body.TeamID)
	}
	if err != nil {
		return datastore.AuctionLog{}, err
	}

	return s.Store.CreateAuctionLog(ctx, datastore.AuctionLog{
		PlayerID:   player.PlayerID,
		PlayerName: player.Name,
		TeamID:     team.TeamID,
		TeamName:   team.Name,
		Price:      body.Price,
	})
}

func (s *AuctionsService) ListAuctionLogs(ctx context.Context) ([]datastore.AuctionLog, error) {
	return s.Store.ListAuctionLogs(ctx)
}
