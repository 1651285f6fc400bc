package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore is the hosted variant. Player writes and the team
// reconciliation they trigger share one transaction, so a failure midway
// rolls back instead of leaving stale derived statistics behind.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(&Player{}, &Team{}, &Auction{}, &AuctionLog{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// reconcileTeamTx rewrites one team's derived columns from a player
// aggregate. Zero rows affected means the id was a dangling weak reference,
// which is fine.
func reconcileTeamTx(tx *gorm.DB, teamID string, now time.Time) error {
	var agg struct {
		Count  int
		Points int
		Spent  int64
	}
	err := tx.Raw(
		`SELECT COUNT(*) AS count, COALESCE(SUM(points), 0) AS points, COALESCE(SUM(sold_price), 0) AS spent
		 FROM players WHERE team_id = ?`, teamID,
	).Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("aggregate team %s: %w", teamID, err)
	}

	err = tx.Exec(
		`UPDATE teams
		 SET players_count = ?, total_points = ?, total_spent = ?,
		     remaining_budget = GREATEST(budget - ?, 0), updated_at = ?
		 WHERE team_id = ?`,
		agg.Count, agg.Points, agg.Spent, agg.Spent, now, teamID,
	).Error
	if err != nil {
		return fmt.Errorf("reconcile team %s: %w", teamID, err)
	}
	return nil
}

func (s *PostgresStore) CreatePlayer(ctx context.Context, p Player) (Player, error) {
	now := time.Now().UTC()
	p.PlayerID = NewID()
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if p.TeamID != nil {
			return reconcileTeamTx(tx, *p.TeamID, now)
		}
		return nil
	})
	if err != nil {
		return Player{}, fmt.Errorf("create player: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetPlayer(ctx context.Context, id string) (Player, error) {
	var p Player
	err := s.db.WithContext(ctx).First(&p, "player_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Player{}, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListPlayers(ctx context.Context) ([]Player, error) {
	var players []Player
	err := s.db.WithContext(ctx).Order("created_at, player_id").Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PostgresStore) UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (Player, error) {
	var p Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "player_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("player %s: %w", id, ErrNotFound)
			}
			return err
		}

		before := p.TeamID
		p.apply(patch)
		now := time.Now().UTC()
		p.UpdatedAt = now

		// Save writes every column; the patch already decided what changed.
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		for _, teamID := range affectedTeamIDs(before, p.TeamID) {
			if err := reconcileTeamTx(tx, teamID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Player{}, err
		}
		return Player{}, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeletePlayer(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Player
		if err := tx.First(&p, "player_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Delete(&Player{}, "player_id = ?", id).Error; err != nil {
			return err
		}
		deleted = true

		if p.TeamID != nil {
			return reconcileTeamTx(tx, *p.TeamID, time.Now().UTC())
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	return deleted, nil
}

func (s *PostgresStore) CreateTeam(ctx context.Context, t Team) (Team, error) {
	now := time.Now().UTC()
	t.TeamID = NewID()
	t = RecomputeTeamStats(t, nil)
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) GetTeam(ctx context.Context, id string) (Team, error) {
	var t Team
	err := s.db.WithContext(ctx).First(&t, "team_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Team{}, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := s.db.WithContext(ctx).Order("created_at, team_id").Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *PostgresStore) UpdateTeam(ctx context.Context, id string, patch TeamPatch) (Team, error) {
	var t Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "team_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("team %s: %w", id, ErrNotFound)
			}
			return err
		}

		t.apply(patch)
		now := time.Now().UTC()
		t.UpdatedAt = now
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		if err := reconcileTeamTx(tx, id, now); err != nil {
			return err
		}
		return tx.First(&t, "team_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Team{}, err
		}
		return Team{}, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) DeleteTeam(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`UPDATE players
			 SET team_id = NULL, sold_price = NULL, status = ?, updated_at = ?
			 WHERE team_id = ?`,
			StatusAvailable, time.Now().UTC(), id,
		)
		if res.Error != nil {
			return res.Error
		}

		del := tx.Delete(&Team{}, "team_id = ?", id)
		if del.Error != nil {
			return del.Error
		}
		deleted = del.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete team: %w", err)
	}
	return deleted, nil
}

func (s *PostgresStore) CreateAuction(ctx context.Context, a Auction) (Auction, error) {
	now := time.Now().UTC()
	a.AuctionID = NewID()
	if a.StartedAt.IsZero() {
		a.StartedAt = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return Auction{}, fmt.Errorf("create auction: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) GetAuction(ctx context.Context, id string) (Auction, error) {
	var a Auction
	err := s.db.WithContext(ctx).First(&a, "auction_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Auction{}, fmt.Errorf("auction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Auction{}, fmt.Errorf("get auction: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) GetActiveAuction(ctx context.Context) (Auction, error) {
	var a Auction
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND is_completed = ?", true, false).
		Order("started_at DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Auction{}, fmt.Errorf("active auction: %w", ErrNotFound)
	}
	if err != nil {
		return Auction{}, fmt.Errorf("get active auction: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) ListAuctions(ctx context.Context) ([]Auction, error) {
	var auctions []Auction
	err := s.db.WithContext(ctx).Order("created_at, auction_id").Find(&auctions).Error
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

func (s *PostgresStore) UpdateAuction(ctx context.Context, id string, patch AuctionPatch) (Auction, error) {
	var a Auction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "auction_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("auction %s: %w", id, ErrNotFound)
			}
			return err
		}

		wasCompleted := a.IsCompleted
		a.apply(patch)
		now := time.Now().UTC()
		if a.IsCompleted && !wasCompleted && a.CompletedAt == nil {
			completed := now
			a.CompletedAt = &completed
		}
		a.UpdatedAt = now
		return tx.Save(&a).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Auction{}, err
		}
		return Auction{}, fmt.Errorf("update auction: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) DeleteAuction(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&Auction{}, "auction_id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete auction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *PostgresStore) CreateAuctionLog(ctx context.Context, l AuctionLog) (AuctionLog, error) {
	l.LogID = NewID()
	l.CreatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return AuctionLog{}, fmt.Errorf("create auction log: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) ListAuctionLogs(ctx context.Context) ([]AuctionLog, error) {
	var logs []AuctionLog
	err := s.db.WithContext(ctx).Order("created_at, log_id").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list auction logs: %w", err)
	}
	return logs, nil
}
