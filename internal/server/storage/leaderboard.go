package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// Leaderboard types accepted by GetLeaderboard.
const (
	LeaderboardTotal  = "total"
	LeaderboardDaily  = "daily"
	LeaderboardWeekly = "weekly"
)

// PlayerStats is the persisted record of one player.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalGames int `json:"total_games"`
	GamesWon   int `json:"games_won"`

	TurnsWon  int `json:"turns_won"`
	TurnsLost int `json:"turns_lost"`
	TurnsTied int `json:"turns_tied"`

	Score int `json:"score"`

	// consecutive turns won, reset by any other turn result
	CurrentRun int `json:"current_run"`
	BestStreak int `json:"best_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// WinRate is the share of finished games won, in percent.
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.TotalGames) * 100
}

// TurnResult is what a single turn meant for one player.
type TurnResult int

const (
	TurnWon TurnResult = iota + 1
	TurnLost
	TurnTied
)

func (r TurnResult) String() string {
	switch r {
	case TurnWon:
		return "won"
	case TurnLost:
		return "lost"
	case TurnTied:
		return "tied"
	default:
		return "unknown"
	}
}

// Scoring.
const (
	TurnWinPoints  = 10
	GameWinPoints  = 30
	GameLossPoints = -10

	StreakBonus3  = 5
	StreakBonus5  = 10
	StreakBonus10 = 20
)

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	TurnsWon   int     `json:"turns_won"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardManager keeps player stats and the score rankings in redis.
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// GetPlayerStats returns nil, nil for a player that never finished a turn.
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats %s: %w", playerID, err)
	}
	return &stats, nil
}

func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:  playerID,
			CreatedAt: lm.now().Unix(),
		}
	}
	stats.PlayerName = playerName
	stats.LastPlayedAt = lm.now().Unix()
	return stats, nil
}

func calculateStreakBonus(run int) int {
	switch {
	case run >= 10:
		return StreakBonus10
	case run >= 5:
		return StreakBonus5
	case run >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordTurn counts one closed turn for a player and updates the score.
func (lm *LeaderboardManager) RecordTurn(ctx context.Context, playerID, playerName string, result TurnResult) error {
	stats, err := lm.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	switch result {
	case TurnWon:
		stats.TurnsWon++
		stats.CurrentRun++
		stats.BestStreak = max(stats.BestStreak, stats.CurrentRun)
		stats.Score += TurnWinPoints + calculateStreakBonus(stats.CurrentRun)
	case TurnLost:
		stats.TurnsLost++
		stats.CurrentRun = 0
	case TurnTied:
		stats.TurnsTied++
		stats.CurrentRun = 0
	default:
		return fmt.Errorf("unknown turn result %d", result)
	}

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

// RecordGame counts a finished game. The score never drops below zero.
func (lm *LeaderboardManager) RecordGame(ctx context.Context, playerID, playerName string, won bool) error {
	stats, err := lm.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	stats.TotalGames++
	if won {
		stats.GamesWon++
		stats.Score += GameWinPoints
	} else {
		stats.Score = max(0, stats.Score+GameLossPoints)
	}

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) dailyKey() string {
	return dailyLeaderboard + lm.now().Format("2006-01-02")
}

func (lm *LeaderboardManager) weeklyKey() string {
	year, week := lm.now().ISOWeek()
	return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
}

// UpdateLeaderboard writes the player's score into the total, daily and weekly sets.
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	member := redis.Z{Score: float64(stats.Score), Member: stats.PlayerID}

	dailyKey := lm.dailyKey()
	weeklyKey := lm.weeklyKey()

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, member)
	pipe.ZAdd(ctx, dailyKey, member)
	pipe.Expire(ctx, dailyKey, 48*time.Hour)
	pipe.ZAdd(ctx, weeklyKey, member)
	pipe.Expire(ctx, weeklyKey, 8*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (lm *LeaderboardManager) keyFor(leaderboardType string) string {
	switch leaderboardType {
	case LeaderboardDaily:
		return lm.dailyKey()
	case LeaderboardWeekly:
		return lm.weeklyKey()
	default:
		return leaderboardKey
	}
}

// GetLeaderboard returns entries ranked high to low. Unknown types read the total board.
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, leaderboardType string, offset, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return []LeaderboardEntry{}, nil
	}
	offset = max(0, offset)

	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.keyFor(leaderboardType), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		entries = append(entries, LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			TurnsWon:   stats.TurnsWon,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank returns the 1-based rank on the total board, or -1 when unranked.
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
