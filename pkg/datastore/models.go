package datastore

import "time"

type PlayerRole string

const (
	RoleBatsman      PlayerRole = "Batsman"
	RoleBowler       PlayerRole = "Bowler"
	RoleAllRounder   PlayerRole = "All-rounder"
	RoleWicketKeeper PlayerRole = "Wicket-keeper"
)

func (r PlayerRole) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		return true
	}
	return false
}

type PlayerStatus string

const (
	StatusAvailable PlayerStatus = "Available"
	StatusSold      PlayerStatus = "Sold"
	StatusUnsold    PlayerStatus = "Unsold"
)

func (s PlayerStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusUnsold:
		return true
	}
	return false
}

// Player is an auction lot. TeamID is a weak reference: the store never
// rejects an id pointing at a missing team, it just has nothing to reconcile.
// All prices are whole rupees.
type Player struct {
	PlayerID  string       `json:"player_id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"not null"`
	Role      PlayerRole   `json:"role" gorm:"not null"`
	Country   string       `json:"country"`
	Age       int          `json:"age"`
	Matches   int          `json:"matches"`
	Runs      int          `json:"runs"`
	Wickets   int          `json:"wickets"`
	Catches   int          `json:"catches"`
	Points    int          `json:"points"`
	BasePrice int64        `json:"base_price"`
	Pool      string       `json:"pool,omitempty"`
	Status    PlayerStatus `json:"status" gorm:"default:'Available'"`
	SoldPrice *int64       `json:"sold_price,omitempty"`
	TeamID    *string      `json:"team_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Team carries four derived fields (RemainingBudget, TotalSpent, PlayersCount,
// TotalPoints) that are owned by the reconciliation routine. Callers can only
// write Name and Budget; everything else is recomputed from the player set.
type Team struct {
	TeamID          string    `json:"team_id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Budget          int64     `json:"budget" gorm:"not null"`
	RemainingBudget int64     `json:"remaining_budget"`
	TotalSpent      int64     `json:"total_spent"`
	PlayersCount    int       `json:"players_count"`
	TotalPoints     int       `json:"total_points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Auction is one player's bidding session. Only one auction is active at a
// time by convention; nothing here enforces that.
type Auction struct {
	AuctionID     string     `json:"auction_id" gorm:"primaryKey"`
	PlayerID      string     `json:"player_id" gorm:"not null"`
	CurrentBid    int64      `json:"current_bid"`
	WinningTeamID *string    `json:"winning_team_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsCompleted   bool       `json:"is_completed"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AuctionLog is an immutable record of a completed sale. Player and team
// names are denormalized so history still reads after renames or deletions.
type AuctionLog struct {
	LogID      string    `json:"log_id" gorm:"primaryKey"`
	PlayerID   string    `json:"player_id" gorm:"not null"`
	PlayerName string    `json:"player_name"`
	TeamID     string    `json:"team_id" gorm:"not null"`
	TeamName   string    `json:"team_name"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}
