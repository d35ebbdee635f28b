package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	roomKeyPrefix    = "room:"
	sessionKeyPrefix = "session:"
	matchQueueKey    = "match:queue"

	roomExpiration    = 2 * time.Hour
	sessionExpiration = 10 * time.Minute
)

// RoomData is the redis snapshot of a room.
type RoomData struct {
	Code        string       `json:"code"`
	State       int          `json:"state"`
	Capacity    int          `json:"capacity"`
	Players     []PlayerData `json:"players"`
	PlayerOrder []string     `json:"player_order"`
	CreatedAt   int64        `json:"created_at"`
	Table       *TableData   `json:"table,omitempty"`
}

type PlayerData struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	Ready  bool   `json:"ready"`
	Online bool   `json:"online"`
}

// TableData summarizes a running table. It is informational; tables are not restored from it.
type TableData struct {
	Turn         int   `json:"turn"`
	Hidden       int   `json:"hidden"`
	Visible      int   `json:"visible"`
	Piles        []int `json:"piles"`
	Accumulation int   `json:"accumulation"`
}

// RedisStore keeps room snapshots, the match queue and reconnect sessions.
// A nil client turns every call into a no-op so rooms work without redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Enabled reports whether a redis client is configured.
func (rs *RedisStore) Enabled() bool {
	return rs != nil && rs.client != nil
}

// --- rooms ---

func (rs *RedisStore) SaveRoom(ctx context.Context, roomCode string, data *RoomData) error {
	if !rs.Enabled() || data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", roomCode, err)
	}

	return rs.client.Set(ctx, roomKeyPrefix+roomCode, jsonData, roomExpiration).Err()
}

// LoadRoom returns nil, nil when the room is not stored.
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	if !rs.Enabled() {
		return nil, nil
	}
	data, err := rs.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &roomData, nil
}

func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}

// GetAllRoomCodes scans the stored room keys.
func (rs *RedisStore) GetAllRoomCodes(ctx context.Context) ([]string, error) {
	if !rs.Enabled() {
		return nil, nil
	}
	var codes []string
	iter := rs.client.Scan(ctx, 0, roomKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, iter.Val()[len(roomKeyPrefix):])
	}
	return codes, iter.Err()
}

// --- match queue ---

func (rs *RedisStore) AddToMatchQueue(ctx context.Context, playerID string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.RPush(ctx, matchQueueKey, playerID).Err()
}

func (rs *RedisStore) RemoveFromMatchQueue(ctx context.Context, playerID string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.LRem(ctx, matchQueueKey, 0, playerID).Err()
}

func (rs *RedisStore) GetMatchQueueLength(ctx context.Context) (int64, error) {
	if !rs.Enabled() {
		return 0, nil
	}
	return rs.client.LLen(ctx, matchQueueKey).Result()
}

// PopFromMatchQueue pops up to count players from the head of the queue.
func (rs *RedisStore) PopFromMatchQueue(ctx context.Context, count int) ([]string, error) {
	if !rs.Enabled() {
		return nil, nil
	}
	pipe := rs.client.Pipeline()
	results := make([]*redis.StringCmd, count)
	for i := range count {
		results[i] = pipe.LPop(ctx, matchQueueKey)
	}

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	players := make([]string, 0, count)
	for _, result := range results {
		if playerID, err := result.Result(); err == nil {
			players = append(players, playerID)
		}
	}
	return players, nil
}

// --- sessions ---

// PlayerSessionData is the redis form of a reconnect session.
type PlayerSessionData struct {
	PlayerID       string
	PlayerName     string
	ReconnectToken string
	RoomCode       string
	IsOnline       bool
	DisconnectedAt int64
}

func (rs *RedisStore) SaveSession(ctx context.Context, session *PlayerSessionData) error {
	if !rs.Enabled() || session == nil {
		return nil
	}
	data := map[string]any{
		"player_id":       session.PlayerID,
		"player_name":     session.PlayerName,
		"token":           session.ReconnectToken,
		"room_code":       session.RoomCode,
		"is_online":       session.IsOnline,
		"disconnected_at": session.DisconnectedAt,
	}

	key := sessionKeyPrefix + session.PlayerID
	pipe := rs.client.TxPipeline()
	pipe.HSet(ctx, key, data)
	pipe.Expire(ctx, key, sessionExpiration)
	_, err := pipe.Exec(ctx)
	return err
}

// LoadSession returns nil, nil when no session is stored.
func (rs *RedisStore) LoadSession(ctx context.Context, playerID string) (*PlayerSessionData, error) {
	if !rs.Enabled() {
		return nil, nil
	}
	data, err := rs.client.HGetAll(ctx, sessionKeyPrefix+playerID).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	disconnectedAt, _ := strconv.ParseInt(data["disconnected_at"], 10, 64)
	return &PlayerSessionData{
		PlayerID:       data["player_id"],
		PlayerName:     data["player_name"],
		ReconnectToken: data["token"],
		RoomCode:       data["room_code"],
		IsOnline:       data["is_online"] == "1",
		DisconnectedAt: disconnectedAt,
	}, nil
}

func (rs *RedisStore) DeleteSession(ctx context.Context, playerID string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Del(ctx, sessionKeyPrefix+playerID).Err()
}

// SetRoomExpiration changes how long a room snapshot is kept.
func (rs *RedisStore) SetRoomExpiration(ctx context.Context, code string, expiration time.Duration) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Expire(ctx, roomKeyPrefix+code, expiration).Err()
}
