// Package datastore is the authoritative record of players, teams, auctions
// and auction logs. A Store is constructed once in main and handed to every
// service; the memory implementation backs tests and dependency-free runs,
// the postgres implementation is the hosted variant.
package datastore

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// ErrNotFound is wrapped by store methods when the requested id is absent.
var ErrNotFound = errors.New("not found")

type Store interface {
	CreatePlayer(ctx context.Context, p Player) (Player, error)
	GetPlayer(ctx context.Context, id string) (Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	// UpdatePlayer merges the patch into the stored record and reconciles the
	// derived statistics of every team whose membership or spend changed.
	UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (Player, error)
	DeletePlayer(ctx context.Context, id string) (bool, error)

	CreateTeam(ctx context.Context, t Team) (Team, error)
	GetTeam(ctx context.Context, id string) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	UpdateTeam(ctx context.Context, id string, patch TeamPatch) (Team, error)
	// DeleteTeam resets every assigned player to the unassigned Available
	// state before removing the team.
	DeleteTeam(ctx context.Context, id string) (bool, error)

	CreateAuction(ctx context.Context, a Auction) (Auction, error)
	GetAuction(ctx context.Context, id string) (Auction, error)
	GetActiveAuction(ctx context.Context) (Auction, error)
	ListAuctions(ctx context.Context) ([]Auction, error)
	UpdateAuction(ctx context.Context, id string, patch AuctionPatch) (Auction, error)
	DeleteAuction(ctx context.Context, id string) (bool, error)

	CreateAuctionLog(ctx context.Context, l AuctionLog) (AuctionLog, error)
	ListAuctionLogs(ctx context.Context) ([]AuctionLog, error)

	Close() error
}

// PlayerPatch is a partial update; nil fields are left untouched. Setting
// TeamID to the empty string detaches the player: team and sold price reset
// to nil and status returns to Available.
type PlayerPatch struct {
	Name      *string       `json:"name,omitempty"`
	Role      *PlayerRole   `json:"role,omitempty"`
	Country   *string       `json:"country,omitempty"`
	Age       *int          `json:"age,omitempty"`
	Matches   *int          `json:"matches,omitempty"`
	Runs      *int          `json:"runs,omitempty"`
	Wickets   *int          `json:"wickets,omitempty"`
	Catches   *int          `json:"catches,omitempty"`
	Points    *int          `json:"points,omitempty"`
	BasePrice *int64        `json:"base_price,omitempty"`
	Pool      *string       `json:"pool,omitempty"`
	Status    *PlayerStatus `json:"status,omitempty"`
	SoldPrice *int64        `json:"sold_price,omitempty"`
	TeamID    *string       `json:"team_id,omitempty"`
}

// TeamPatch covers the only caller-writable team fields. Derived statistics
// are recomputed, never patched.
type TeamPatch struct {
	Name   *string `json:"name,omitempty"`
	Budget *int64  `json:"budget,omitempty"`
}

// AuctionPatch is a partial update. Setting WinningTeamID to the empty string
// clears it.
type AuctionPatch struct {
	CurrentBid    *int64  `json:"current_bid,omitempty"`
	WinningTeamID *string `json:"winning_team_id,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	IsCompleted   *bool   `json:"is_completed,omitempty"`
}

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func init() {
	rand.Seed(uint64(time.Now().UnixNano()))
}

// NewID returns a fresh 8-character random id. Ids are opaque strings; the
// store assigns one on every create regardless of what the caller passed.
func NewID() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(b)
}

// apply merges patch into p. Detaching runs last so a patch that both
// detaches and sets sale fields cannot leave a sold price behind without a
// team.
func (p *Player) apply(patch PlayerPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Matches != nil {
		p.Matches = *patch.Matches
	}
	if patch.Runs != nil {
		p.Runs = *patch.Runs
	}
	if patch.Wickets != nil {
		p.Wickets = *patch.Wickets
	}
	if patch.Catches != nil {
		p.Catches = *patch.Catches
	}
	if patch.Points != nil {
		p.Points = *patch.Points
	}
	if patch.BasePrice != nil {
		p.BasePrice = *patch.BasePrice
	}
	if patch.Pool != nil {
		p.Pool = *patch.Pool
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.SoldPrice != nil {
		price := *patch.SoldPrice
		p.SoldPrice = &price
	}
	if patch.TeamID != nil {
		if *patch.TeamID == "" {
			p.TeamID = nil
			p.SoldPrice = nil
			p.Status = StatusAvailable
		} else {
			team := *patch.TeamID
			p.TeamID = &team
		}
	}
}

func (t *Team) apply(patch TeamPatch) {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Budget != nil {
		t.Budget = *patch.Budget
	}
}

func (a *Auction) apply(patch AuctionPatch) {
	if patch.CurrentBid != nil {
		a.CurrentBid = *patch.CurrentBid
	}
	if patch.WinningTeamID != nil {
		if *patch.WinningTeamID == "" {
			a.WinningTeamID = nil
		} else {
			team := *patch.WinningTeamID
			a.WinningTeamID = &team
		}
	}
	if patch.IsActive != nil {
		a.IsActive = *patch.IsActive
	}
	if patch.IsCompleted != nil {
		a.IsCompleted = *patch.IsCompleted
	}
}

// affectedTeamIDs lists the distinct teams whose derived statistics must be
// reconciled after a player moved between before and after.
func affectedTeamIDs(before, after *string) []string {
	ids := make([]string, 0, 2)
	if before != nil {
		ids = append(ids, *before)
	}
	if after != nil && (before == nil || *after != *before) {
		ids = append(ids, *after)
	}
	return ids
}
