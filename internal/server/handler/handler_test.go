package handler

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anibalanto/cardascii-24game/internal/game/match"
	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
	"github.com/anibalanto/cardascii-24game/internal/server/session"
	"github.com/anibalanto/cardascii-24game/internal/testutil"
)

type testEnv struct {
	h           *Handler
	server      *testutil.MockServer
	leaderboard *testutil.MockLeaderboard
	rooms       *room.RoomManager
	sessions    *session.SessionManager
	matcher     *match.Matcher
}

func newTestEnv(t *testing.T, maintenance bool) *testEnv {
	t.Helper()

	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(maintenance).Maybe()
	srv.On("RegisterClient", mock.Anything, mock.Anything).Maybe()
	srv.On("UnregisterClient", mock.Anything).Maybe()
	srv.On("GetClientByID", mock.Anything).Return(nil).Maybe()

	ldb := new(testutil.MockLeaderboard)
	ldb.On("RecordTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	ldb.On("RecordGame", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	rm := room.NewRoomManager(nil, time.Minute, 2)
	t.Cleanup(rm.Stop)
	sm := session.NewSessionManager(nil)
	t.Cleanup(sm.Stop)
	m := match.NewMatcher(match.MatcherDeps{RoomManager: rm})

	h := NewHandler(HandlerDeps{
		Server:         srv,
		RoomManager:    rm,
		Matcher:        m,
		Leaderboard:    ldb,
		SessionManager: sm,
		Settings:       session.Settings{Rand: rand.New(rand.NewPCG(7, 11))},
	})

	return &testEnv{h: h, server: srv, leaderboard: ldb, rooms: rm, sessions: sm, matcher: m}
}

// startTable seats Alice and Bob in a new room and readies both.
func (e *testEnv) startTable(t *testing.T) (alice, bob *testutil.SimpleClient, code string) {
	t.Helper()

	alice = testutil.NewSimpleClient("p1", "Alice")
	bob = testutil.NewSimpleClient("p2", "Bob")
	e.sessions.CreateSession(alice.ID, alice.Name)
	e.sessions.CreateSession(bob.ID, bob.Name)

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
	code = alice.GetRoom()
	require.NotEmpty(t, code)

	e.h.Handle(bob, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code}))
	require.Equal(t, code, bob.GetRoom())

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgReady, nil))
	e.h.Handle(bob, codec.MustNewMessage(protocol.MsgReady, nil))
	require.NotNil(t, e.h.GetGameSession(code))
	return alice, bob, code
}

func payloadOf[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	require.NotNil(t, msg)
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

func lastErrorCode(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()
	return payloadOf[protocol.ErrorPayload](t, c.LastOfType(protocol.MsgError)).Code
}

func TestHandler_UnknownMessage(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "Alice")

	e.h.Handle(c, &protocol.Message{Type: "bid"})

	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, c))
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "Alice")

	e.h.Handle(c, codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 42}))

	pong := payloadOf[protocol.PongPayload](t, c.LastOfType(protocol.MsgPong))
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandler_ReadyStartsGame(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, code := e.startTable(t)

	created := payloadOf[protocol.RoomCreatedPayload](t, alice.LastOfType(protocol.MsgRoomCreated))
	assert.Equal(t, code, created.RoomCode)
	joined := payloadOf[protocol.RoomJoinedPayload](t, bob.LastOfType(protocol.MsgRoomJoined))
	assert.Len(t, joined.Players, 2)

	for _, c := range []*testutil.SimpleClient{alice, bob} {
		start := payloadOf[protocol.GameStartPayload](t, c.LastOfType(protocol.MsgGameStart))
		assert.Equal(t, 24, start.Target)
		begin := payloadOf[protocol.TurnBeginPayload](t, c.LastOfType(protocol.MsgTurnBegin))
		assert.Equal(t, 1, begin.Turn)
		assert.Len(t, begin.Cards, 4)
	}
	assert.Equal(t, 1, e.h.GameCount())
	assert.Equal(t, room.RoomStatePlaying, e.rooms.GetRoom(code).GetState())
}

func TestHandler_AnswerThatDoesNotWin(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, _ := e.startTable(t)

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgAnswer, protocol.AnswerPayload{Answer: "1+1"}))

	assert.Equal(t, 1, alice.CountOfType(protocol.MsgTurnContinue))
	assert.Zero(t, bob.CountOfType(protocol.MsgTurnContinue))
	assert.Zero(t, alice.CountOfType(protocol.MsgTurnEnd))
}

func TestHandler_TableErrors(t *testing.T) {
	t.Parallel()

	t.Run("not in a room", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		c := testutil.NewSimpleClient("p9", "Zed")
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgNewTurn, nil))
		assert.Equal(t, protocol.ErrCodeNotInRoom, lastErrorCode(t, c))
	})

	t.Run("waiting room", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		c := testutil.NewSimpleClient("p1", "Alice")
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgConcede, nil))
		assert.Equal(t, protocol.ErrCodeGameNotStart, lastErrorCode(t, c))
	})

	t.Run("answer too long", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		alice, _, _ := e.startTable(t)
		long := "1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1"
		e.h.Handle(alice, codec.MustNewMessage(protocol.MsgAnswer, protocol.AnswerPayload{Answer: long}))
		assert.Equal(t, protocol.ErrCodeInvalidAnswer, lastErrorCode(t, alice))
	})

	t.Run("ready after start", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		alice, _, _ := e.startTable(t)
		e.h.Handle(alice, codec.MustNewMessage(protocol.MsgCancelReady, nil))
		assert.Equal(t, protocol.ErrCodeGameStarted, lastErrorCode(t, alice))
	})
}

func TestHandler_Concede(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, code := e.startTable(t)

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgConcede, nil))

	over := payloadOf[protocol.GameOverPayload](t, bob.LastOfType(protocol.MsgGameOver))
	assert.Equal(t, protocol.ReasonConceded, over.Reason)
	assert.Equal(t, 1, alice.CountOfType(protocol.MsgGameOver))

	assert.Eventually(t, func() bool {
		return e.h.GameCount() == 0 && e.rooms.GetRoom(code) == nil
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, alice.GetRoom())
	assert.Empty(t, bob.GetRoom())
}

func TestHandler_LeaveRunningGame(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, _ := e.startTable(t)

	e.h.Handle(bob, codec.MustNewMessage(protocol.MsgLeaveRoom, nil))

	over := payloadOf[protocol.GameOverPayload](t, alice.LastOfType(protocol.MsgGameOver))
	assert.Equal(t, protocol.ReasonPlayerLeft, over.Reason)
	assert.Empty(t, bob.GetRoom())
	assert.Eventually(t, func() bool { return e.h.GameCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_RoomErrors(t *testing.T) {
	t.Parallel()

	t.Run("maintenance", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, true)
		c := testutil.NewSimpleClient("p1", "Alice")
		for _, msgType := range []protocol.MessageType{protocol.MsgCreateRoom, protocol.MsgJoinRoom, protocol.MsgQuickMatch} {
			e.h.Handle(c, codec.MustNewMessage(msgType, protocol.JoinRoomPayload{RoomCode: "123456"}))
			assert.Equal(t, protocol.ErrCodeServerMaintenance, lastErrorCode(t, c), msgType)
		}
		assert.Zero(t, e.rooms.GetRoomCount())
		assert.Zero(t, e.matcher.GetQueueLength())
	})

	t.Run("unknown room", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		c := testutil.NewSimpleClient("p1", "Alice")
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "000000"}))
		assert.Equal(t, protocol.ErrCodeRoomNotFound, lastErrorCode(t, c))
	})

	t.Run("create while seated moves to the new room", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t, false)
		c := testutil.NewSimpleClient("p1", "Alice")
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
		first := c.GetRoom()
		e.h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
		assert.NotEqual(t, first, c.GetRoom())
		assert.Nil(t, e.rooms.GetRoom(first))
		assert.Equal(t, 1, e.rooms.GetRoomCount())
	})
}

func TestHandler_QuickMatch(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgQuickMatch, nil))
	e.h.Handle(bob, codec.MustNewMessage(protocol.MsgQuickMatch, nil))

	assert.Eventually(t, func() bool { return e.h.GameCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return alice.CountOfType(protocol.MsgTurnBegin) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, alice.GetRoom(), bob.GetRoom())
	assert.Equal(t, 1, bob.CountOfType(protocol.MsgMatchFound))
}

func TestHandler_DisconnectAndReconnect(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, code := e.startTable(t)
	token := e.sessions.GetSession(alice.ID).ReconnectToken

	e.h.OnDisconnect(alice)

	offline := payloadOf[protocol.PlayerOfflinePayload](t, bob.LastOfType(protocol.MsgPlayerOffline))
	assert.Equal(t, "p1", offline.PlayerID)
	assert.False(t, e.sessions.IsOnline("p1"))
	assert.Equal(t, code, e.sessions.GetSession("p1").Room())
	e.server.AssertCalled(t, "UnregisterClient", "p1")

	fresh := testutil.NewSimpleClient("tmp", "Guest")
	e.sessions.CreateSession(fresh.ID, fresh.Name)
	e.h.Handle(fresh, codec.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    token,
		PlayerID: "p1",
	}))

	back := payloadOf[protocol.ReconnectedPayload](t, fresh.LastOfType(protocol.MsgReconnected))
	assert.Equal(t, "p1", back.PlayerID)
	assert.Equal(t, "Alice", back.PlayerName)
	assert.Equal(t, code, back.RoomCode)
	require.NotNil(t, back.Table)
	assert.Len(t, back.Table.Cards, 4)
	assert.Len(t, back.Table.Players, 2)

	assert.Equal(t, "p1", fresh.GetID())
	assert.Equal(t, code, fresh.GetRoom())
	assert.True(t, e.sessions.IsOnline("p1"))
	assert.Nil(t, e.sessions.GetSession("tmp"))
	e.server.AssertCalled(t, "RegisterClient", "p1", fresh)

	online := payloadOf[protocol.PlayerOnlinePayload](t, bob.LastOfType(protocol.MsgPlayerOnline))
	assert.Equal(t, "p1", online.PlayerID)
}

func TestHandler_DisconnectEveryoneAbortsGame(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice, bob, code := e.startTable(t)

	e.h.OnDisconnect(alice)
	e.h.OnDisconnect(bob)

	assert.Nil(t, e.rooms.GetRoom(code))
	assert.Eventually(t, func() bool { return e.h.GameCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_DisconnectFromWaitingRoom(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")
	e.sessions.CreateSession(alice.ID, alice.Name)

	e.h.Handle(alice, codec.MustNewMessage(protocol.MsgCreateRoom, nil))
	code := alice.GetRoom()
	e.h.Handle(bob, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code}))

	e.h.OnDisconnect(alice)

	r := e.rooms.GetRoom(code)
	require.NotNil(t, r)
	assert.False(t, r.HasPlayer("p1"))
	assert.Empty(t, e.sessions.GetSession("p1").Room())
	assert.Equal(t, 1, bob.CountOfType(protocol.MsgPlayerLeft))
}

func TestHandler_ReconnectRejected(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, false)
	e.sessions.CreateSession("p1", "Alice")
	c := testutil.NewSimpleClient("tmp", "Guest")

	e.h.Handle(c, codec.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    "not-a-token",
		PlayerID: "p1",
	}))

	assert.Equal(t, protocol.ErrCodeUnknown, lastErrorCode(t, c))
	assert.Equal(t, "tmp", c.GetID())
	e.server.AssertNotCalled(t, "RegisterClient", mock.Anything, mock.Anything)
}
