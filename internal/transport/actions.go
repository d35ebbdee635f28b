package transport

import (
	"fmt"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

func (c *Client) CreateRoom() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCreateRoom, nil))
}

func (c *Client) JoinRoom(roomCode string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: roomCode,
	}))
}

func (c *Client) LeaveRoom() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLeaveRoom, nil))
}

func (c *Client) QuickMatch() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgQuickMatch, nil))
}

func (c *Client) Ready() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgReady, nil))
}

func (c *Client) CancelReady() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCancelReady, nil))
}

// NewTurn asks for a hand when none is on the table.
func (c *Client) NewTurn() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgNewTurn, nil))
}

// Answer sends expr padded with spaces to the answer width.
func (c *Client) Answer(expr string) error {
	width := c.AnswerWidth()
	padded, ok := protocol.PadAnswer(expr, width)
	if !ok {
		return fmt.Errorf("answer is longer than %d bytes", width)
	}
	return c.SendMessage(codec.MustNewMessage(protocol.MsgAnswer, protocol.AnswerPayload{
		Answer: padded,
	}))
}

func (c *Client) Concede() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgConcede, nil))
}

func (c *Client) GetStats() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetStats, nil))
}

func (c *Client) GetLeaderboard(leaderboardType string, offset, limit int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Type:   leaderboardType,
		Offset: offset,
		Limit:  limit,
	}))
}

func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
