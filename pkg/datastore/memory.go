package datastore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps everything in process-local maps. A single RWMutex
// serializes writers, so a player patch and the team reconciliation it
// triggers are one atomic step.
type MemoryStore struct {
	mu       sync.RWMutex
	players  map[string]Player
	teams    map[string]Team
	auctions map[string]Auction
	logs     []AuctionLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:  make(map[string]Player),
		teams:    make(map[string]Team),
		auctions: make(map[string]Auction),
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

// reconcileTeam rebuilds one team's derived statistics. Caller must hold the
// write lock. Unknown ids are ignored: player.TeamID is a weak reference.
func (m *MemoryStore) reconcileTeam(teamID string, now time.Time) {
	team, ok := m.teams[teamID]
	if !ok {
		return
	}
	players := make([]Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	team = RecomputeTeamStats(team, players)
	team.UpdatedAt = now
	m.teams[teamID] = team
}

func (m *MemoryStore) CreatePlayer(_ context.Context, p Player) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	p.PlayerID = NewID()
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	m.players[p.PlayerID] = p

	if p.TeamID != nil {
		m.reconcileTeam(*p.TeamID, now)
	}
	return p, nil
}

func (m *MemoryStore) GetPlayer(_ context.Context, id string) (Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[id]
	if !ok {
		return Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (m *MemoryStore) ListPlayers(_ context.Context) ([]Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	sortPlayers(players)
	return players, nil
}

func (m *MemoryStore) UpdatePlayer(_ context.Context, id string, patch PlayerPatch) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}

	before := p.TeamID
	p.apply(patch)
	now := time.Now().UTC()
	p.UpdatedAt = now
	m.players[id] = p

	for _, teamID := range affectedTeamIDs(before, p.TeamID) {
		m.reconcileTeam(teamID, now)
	}
	return p, nil
}

func (m *MemoryStore) DeletePlayer(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[id]
	if !ok {
		return false, nil
	}
	delete(m.players, id)
	if p.TeamID != nil {
		m.reconcileTeam(*p.TeamID, time.Now().UTC())
	}
	return true, nil
}

func (m *MemoryStore) CreateTeam(_ context.Context, t Team) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	t.TeamID = NewID()
	t = RecomputeTeamStats(t, nil)
	t.CreatedAt = now
	t.UpdatedAt = now
	m.teams[t.TeamID] = t
	return t, nil
}

func (m *MemoryStore) GetTeam(_ context.Context, id string) (Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.teams[id]
	if !ok {
		return Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return t, nil
}

func (m *MemoryStore) ListTeams(_ context.Context) ([]Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	teams := make([]Team, 0, len(m.teams))
	for _, t := range m.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].TeamID < teams[j].TeamID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

func (m *MemoryStore) UpdateTeam(_ context.Context, id string, patch TeamPatch) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.teams[id]
	if !ok {
		return Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}

	t.apply(patch)
	now := time.Now().UTC()
	t.UpdatedAt = now
	m.teams[id] = t

	// A budget change moves the remaining budget even with no player churn.
	m.reconcileTeam(id, now)
	return m.teams[id], nil
}

func (m *MemoryStore) DeleteTeam(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams[id]; !ok {
		return false, nil
	}

	now := time.Now().UTC()
	for pid, p := range m.players {
		if p.TeamID == nil || *p.TeamID != id {
			continue
		}
		p.TeamID = nil
		p.SoldPrice = nil
		p.Status = StatusAvailable
		p.UpdatedAt = now
		m.players[pid] = p
	}
	delete(m.teams, id)
	return true, nil
}

func (m *MemoryStore) CreateAuction(_ context.Context, a Auction) (Auction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	a.AuctionID = NewID()
	if a.StartedAt.IsZero() {
		a.StartedAt = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	m.auctions[a.AuctionID] = a
	return a, nil
}

func (m *MemoryStore) GetAuction(_ context.Context, id string) (Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.auctions[id]
	if !ok {
		return Auction{}, fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (m *MemoryStore) GetActiveAuction(_ context.Context) (Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []Auction
	for _, a := range m.auctions {
		if a.IsActive && !a.IsCompleted {
			active = append(active, a)
		}
	}
	if len(active) == 0 {
		return Auction{}, fmt.Errorf("active auction: %w", ErrNotFound)
	}
	// One active auction is a convention, not an invariant; take the newest.
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartedAt.After(active[j].StartedAt)
	})
	return active[0], nil
}

func (m *MemoryStore) ListAuctions(_ context.Context) ([]Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	auctions := make([]Auction, 0, len(m.auctions))
	for _, a := range m.auctions {
		auctions = append(auctions, a)
	}
	sort.Slice(auctions, func(i, j int) bool {
		if auctions[i].CreatedAt.Equal(auctions[j].CreatedAt) {
			return auctions[i].AuctionID < auctions[j].AuctionID
		}
		return auctions[i].CreatedAt.Before(auctions[j].CreatedAt)
	})
	return auctions, nil
}

func (m *MemoryStore) UpdateAuction(_ context.Context, id string, patch AuctionPatch) (Auction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.auctions[id]
	if !ok {
		return Auction{}, fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}

	wasCompleted := a.IsCompleted
	a.apply(patch)
	now := time.Now().UTC()
	if a.IsCompleted && !wasCompleted && a.CompletedAt == nil {
		completed := now
		a.CompletedAt = &completed
	}
	a.UpdatedAt = now
	m.auctions[id] = a
	return a, nil
}

func (m *MemoryStore) DeleteAuction(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.auctions[id]; !ok {
		return false, nil
	}
	delete(m.auctions, id)
	return true, nil
}

func (m *MemoryStore) CreateAuctionLog(_ context.Context, l AuctionLog) (AuctionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.LogID = NewID()
	l.CreatedAt = time.Now().UTC()
	m.logs = append(m.logs, l)
	return l, nil
}

func (m *MemoryStore) ListAuctionLogs(_ context.Context) ([]AuctionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := make([]AuctionLog, len(m.logs))
	copy(logs, m.logs)
	return logs, nil
}

func sortPlayers(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].PlayerID < players[j].PlayerID
		}
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
}
