package dashboard

import (
	"context"

	"github.com/nilami/api-server/pkg/currency"
	"github.com/nilami/api-server/pkg/datastore"
)

type DashboardService struct {
	Store datastore.Store
}

func New(store datastore.Store) *DashboardService {
	return &DashboardService{Store: store}
}

type Stats struct {
	TotalPlayers            int    `json:"total_players"`
	AvailablePlayers        int    `json:"available_players"`
	SoldPlayers             int    `json:"sold_players"`
	UnsoldPlayers           int    `json:"unsold_players"`
	TotalTeams              int    `json:"total_teams"`
	ActiveAuctions          int    `json:"active_auctions"`
	CompletedAuctions       int    `json:"completed_auctions"`
	TotalSoldValue          int64  `json:"total_sold_value"`
	TotalSoldValueFormatted string `json:"total_sold_value_formatted"`
}

// GetStats is the one aggregate view the dashboard polls. Formatting happens
// here, at the presentation edge; stored values stay plain rupees.
func (s *DashboardService) GetStats(ctx context.Context) (Stats, error) {
	players, err := s.Store.ListPlayers(ctx)
	if err != nil {
		return Stats{}, err
	}
	teams, err := s.Store.ListTeams(ctx)
	if err != nil {
		return Stats{}, err
	}
	auctions, err := s.Store.ListAuctions(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalPlayers: len(players),
		TotalTeams:   len(teams),
	}

	for _, p := range players {
		switch p.Status {
		case datastore.StatusAvailable:
			stats.AvailablePlayers++
		case datastore.StatusSold:
			stats.SoldPlayers++
		case datastore.StatusUnsold:
			stats.UnsoldPlayers++
		}
		if p.SoldPrice != nil {
			stats.TotalSoldValue += *p.SoldPrice
		}
	}

	for _, a := range auctions {
		if a.IsCompleted {
			stats.CompletedAuctions++
			continue
		}
		if a.IsActive {
			stats.ActiveAuctions++
		}
	}

	stats.TotalSoldValueFormatted = currency.FormatINR(stats.TotalSoldValue)
	return stats, nil
}
