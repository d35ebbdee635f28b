package room

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anibalanto/cardascii-24game/internal/apperrors"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/testutil"
)

func TestRoomManager_CreateAndJoin(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, 10*time.Minute, 2)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")

	room, err := rm.CreateRoom(alice)
	require.NoError(t, err)
	assert.Len(t, room.Code, roomCodeLength)
	assert.Equal(t, room.Code, alice.GetRoom())
	assert.Equal(t, 2, room.Capacity)

	joined, err := rm.JoinRoom(bob, room.Code)
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.Equal(t, 1, alice.CountOfType(protocol.MsgPlayerJoined))
	assert.Zero(t, bob.CountOfType(protocol.MsgPlayerJoined))

	infos := room.GetAllPlayersInfo()
	require.Len(t, infos, 2)
	assert.Equal(t, "p1", infos[0].ID)
	assert.Equal(t, 0, infos[0].Seat)
	assert.Equal(t, "p2", infos[1].ID)
	assert.Equal(t, 1, infos[1].Seat)
	assert.Same(t, room, rm.GetRoomByPlayerID("p2"))
	assert.Equal(t, 1, rm.GetRoomCount())
}

func TestRoomManager_JoinErrors(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, 10*time.Minute, 2)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")
	carol := testutil.NewSimpleClient("p3", "Carol")

	room, err := rm.CreateRoom(alice)
	require.NoError(t, err)

	_, err = rm.JoinRoom(carol, "nope")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

	_, err = rm.JoinRoom(alice, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInRoom)

	_, err = rm.CreateRoom(alice)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInRoom)

	_, err = rm.JoinRoom(bob, room.Code)
	require.NoError(t, err)

	_, err = rm.JoinRoom(carol, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	room.SetState(RoomStatePlaying)
	rm.LeaveRoom(bob)
	_, err = rm.JoinRoom(carol, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestRoomManager_LeaveRoom(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, 10*time.Minute, 3)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")
	carol := testutil.NewSimpleClient("p3", "Carol")

	room, err := rm.CreateRoom(alice)
	require.NoError(t, err)
	_, err = rm.JoinRoom(bob, room.Code)
	require.NoError(t, err)

	rm.LeaveRoom(alice)
	assert.Empty(t, alice.GetRoom())
	assert.Equal(t, 1, bob.CountOfType(protocol.MsgPlayerLeft))
	assert.Equal(t, 1, room.PlayerCount())

	// the freed seat 0 goes to the next player
	_, err = rm.JoinRoom(carol, room.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, room.GetPlayerInfo("p3").Seat)

	rm.LeaveRoom(bob)
	rm.LeaveRoom(carol)
	assert.Nil(t, rm.GetRoom(room.Code))

	assert.NotPanics(t, func() { rm.LeaveRoom(alice) })
}

func TestRoomManager_ReadyStartsGame(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, 10*time.Minute, 2)
	var started atomic.Pointer[Room]
	rm.SetOnGameStart(func(r *Room) { started.Store(r) })

	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")

	assert.ErrorIs(t, rm.SetPlayerReady(alice, true), apperrors.ErrNotInRoom)

	room, err := rm.CreateRoom(alice)
	require.NoError(t, err)

	// alone in the room, ready is not enough
	require.NoError(t, rm.SetPlayerReady(alice, true))
	assert.Nil(t, started.Load())

	_, err = rm.JoinRoom(bob, room.Code)
	require.NoError(t, err)
	require.NoError(t, rm.SetPlayerReady(bob, true))

	assert.Same(t, room, started.Load())
	assert.Equal(t, RoomStatePlaying, room.GetState())
	assert.Equal(t, 2, alice.CountOfType(protocol.MsgPlayerReady))
	assert.Equal(t, 1, rm.GetActiveGamesCount())

	assert.ErrorIs(t, rm.SetPlayerReady(bob, false), apperrors.ErrGameStarted)
}

func TestRoomManager_StartIfReady(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, 10*time.Minute, 2)
	var calls atomic.Int32
	rm.SetOnGameStart(func(*Room) { calls.Add(1) })

	room := NewTestRoom("111111", 2, testutil.NewSimpleClient("p1", "A"), testutil.NewSimpleClient("p2", "B"))
	rm.AddRoomForTest(room)

	assert.False(t, rm.StartIfReady(room))
	room.SetAllPlayersReady()
	assert.True(t, rm.StartIfReady(room))
	assert.False(t, rm.StartIfReady(room))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRoom_CheckAllReady(t *testing.T) {
	t.Parallel()

	room := &Room{
		Capacity: 3,
		Players:  make(map[string]*RoomPlayer),
	}

	room.Players["p1"] = &RoomPlayer{Ready: true}
	room.Players["p2"] = &RoomPlayer{Ready: true}
	assert.False(t, room.checkAllReady())

	room.Players["p3"] = &RoomPlayer{Ready: false}
	assert.False(t, room.checkAllReady())

	room.Players["p3"].Ready = true
	assert.True(t, room.checkAllReady())
}

func TestRoom_GetPlayerInfo(t *testing.T) {
	t.Parallel()

	client := testutil.NewSimpleClient("p1", "TestPlayer")
	room := NewTestRoom("123456", 2, testutil.NewSimpleClient("p0", "Other"), client)
	room.Players["p1"].Ready = true

	info := room.GetPlayerInfo("p1")

	assert.Equal(t, "p1", info.ID)
	assert.Equal(t, "TestPlayer", info.Name)
	assert.Equal(t, 1, info.Seat)
	assert.True(t, info.Ready)
	assert.True(t, info.Online)

	assert.Equal(t, "ghost", room.GetPlayerInfo("ghost").ID)
}

func TestRoom_SendTo(t *testing.T) {
	t.Parallel()

	alice := testutil.NewSimpleClient("p1", "Alice")
	room := NewTestRoom("123456", 2, alice)
	msg := &protocol.Message{Type: protocol.MsgPong}

	assert.True(t, room.SendTo("p1", msg))
	assert.False(t, room.SendTo("p2", msg))

	room.Players["p1"].Client = nil
	assert.False(t, room.SendTo("p1", msg))
	assert.Len(t, alice.SentMessages(), 1)
}

func TestRoom_ToRoomData(t *testing.T) {
	t.Parallel()

	room := NewTestRoom("123456", 2, testutil.NewSimpleClient("p1", "Alice"), testutil.NewSimpleClient("p2", "Bob"))
	room.Players["p2"].Client = nil

	data := room.ToRoomData()
	assert.Equal(t, "123456", data.Code)
	assert.Equal(t, 2, data.Capacity)
	require.Len(t, data.Players, 2)
	assert.Equal(t, "Alice", data.Players[0].Name)
	assert.True(t, data.Players[0].Online)
	assert.False(t, data.Players[1].Online)
	assert.Equal(t, []string{"p1", "p2"}, data.PlayerOrder)
}
