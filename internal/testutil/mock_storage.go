//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

// MockLeaderboard implements the stats recorder and reader over storage types.
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) RecordTurn(ctx context.Context, playerID, playerName string, result storage.TurnResult) error {
	args := m.Called(ctx, playerID, playerName, result)
	return args.Error(0)
}

func (m *MockLeaderboard) RecordGame(ctx context.Context, playerID, playerName string, won bool) error {
	args := m.Called(ctx, playerID, playerName, won)
	return args.Error(0)
}

func (m *MockLeaderboard) GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PlayerStats), args.Error(1)
}

func (m *MockLeaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboard) GetLeaderboard(ctx context.Context, leaderboardType string, offset, limit int) ([]storage.LeaderboardEntry, error) {
	args := m.Called(ctx, leaderboardType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LeaderboardEntry), args.Error(1)
}
