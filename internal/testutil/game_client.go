//go:build !production

package testutil

import (
	"errors"
	"slices"
	"sync"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

var errFakeClosed = errors.New("fake client closed")

// FakeGameClient records the actions of the terminal UI instead of sending them.
type FakeGameClient struct {
	mu sync.Mutex

	Connected    bool
	Reconnecting bool
	ConnectErr   error
	AnswerErr    error

	calls    []string
	answers  []string
	joined   []string
	boards   []string
	incoming chan *protocol.Message
}

func NewFakeGameClient() *FakeGameClient {
	return &FakeGameClient{
		Connected: true,
		incoming:  make(chan *protocol.Message, 16),
	}
}

func (c *FakeGameClient) record(call string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	return nil
}

// Calls returns the recorded action names in order.
func (c *FakeGameClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

// Called reports whether call was recorded.
func (c *FakeGameClient) Called(call string) bool {
	return slices.Contains(c.Calls(), call)
}

func (c *FakeGameClient) Answers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.answers)
}

func (c *FakeGameClient) JoinedRooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.joined)
}

func (c *FakeGameClient) LeaderboardTypes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.boards)
}

// Push queues a message for Receive.
func (c *FakeGameClient) Push(msg *protocol.Message) {
	c.incoming <- msg
}

func (c *FakeGameClient) Connect() error {
	_ = c.record("connect")
	return c.ConnectErr
}

func (c *FakeGameClient) Receive() (*protocol.Message, error) {
	msg, ok := <-c.incoming
	if !ok {
		return nil, errFakeClosed
	}
	return msg, nil
}

func (c *FakeGameClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "close")
	c.Connected = false
}

func (c *FakeGameClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Connected
}

func (c *FakeGameClient) IsReconnecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Reconnecting
}

func (c *FakeGameClient) StartHeartbeat() { _ = c.record("heartbeat") }

func (c *FakeGameClient) CreateRoom() error  { return c.record("create_room") }
func (c *FakeGameClient) LeaveRoom() error   { return c.record("leave_room") }
func (c *FakeGameClient) QuickMatch() error  { return c.record("quick_match") }
func (c *FakeGameClient) Ready() error       { return c.record("ready") }
func (c *FakeGameClient) CancelReady() error { return c.record("cancel_ready") }
func (c *FakeGameClient) NewTurn() error     { return c.record("new_turn") }
func (c *FakeGameClient) Concede() error     { return c.record("concede") }
func (c *FakeGameClient) GetStats() error    { return c.record("get_stats") }

func (c *FakeGameClient) JoinRoom(roomCode string) error {
	c.mu.Lock()
	c.joined = append(c.joined, roomCode)
	c.mu.Unlock()
	return c.record("join_room")
}

func (c *FakeGameClient) Answer(expr string) error {
	if c.AnswerErr != nil {
		return c.AnswerErr
	}
	c.mu.Lock()
	c.answers = append(c.answers, expr)
	c.mu.Unlock()
	return c.record("answer")
}

func (c *FakeGameClient) GetLeaderboard(leaderboardType string, _, _ int) error {
	c.mu.Lock()
	c.boards = append(c.boards, leaderboardType)
	c.mu.Unlock()
	return c.record("get_leaderboard")
}
