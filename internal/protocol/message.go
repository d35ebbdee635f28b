package protocol

import "encoding/json"

// Message is the envelope of every frame exchanged over the websocket.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType names the kind of a Message.
type MessageType string

// Client → server
const (
	// connection
	MsgReconnect MessageType = "reconnect"
	MsgPing      MessageType = "ping"

	// rooms
	MsgCreateRoom  MessageType = "create_room"
	MsgJoinRoom    MessageType = "join_room"
	MsgLeaveRoom   MessageType = "leave_room"
	MsgQuickMatch  MessageType = "quick_match"
	MsgReady       MessageType = "ready"
	MsgCancelReady MessageType = "cancel_ready"

	// table
	MsgNewTurn MessageType = "new_turn" // ask for a hand when none is open
	MsgAnswer  MessageType = "answer"   // submit an expression
	MsgConcede MessageType = "concede"  // give up the game

	// stats
	MsgGetStats       MessageType = "get_stats"
	MsgGetLeaderboard MessageType = "get_leaderboard"
)

// Server → client
const (
	// connection
	MsgConnected   MessageType = "connected"
	MsgReconnected MessageType = "reconnected"
	MsgPong        MessageType = "pong"

	// rooms
	MsgRoomCreated   MessageType = "room_created"
	MsgRoomJoined    MessageType = "room_joined"
	MsgPlayerJoined  MessageType = "player_joined"
	MsgPlayerLeft    MessageType = "player_left"
	MsgPlayerReady   MessageType = "player_ready"
	MsgPlayerOffline MessageType = "player_offline"
	MsgPlayerOnline  MessageType = "player_online"
	MsgMatchFound    MessageType = "match_found"

	// table
	MsgGameStart    MessageType = "game_start"
	MsgTurnBegin    MessageType = "turn_begin"    // four cards dealt
	MsgTurnContinue MessageType = "turn_continue" // the answer did not end the turn
	MsgTurnEnd      MessageType = "turn_end"
	MsgGameOver     MessageType = "game_over"

	// stats
	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"

	// system
	MsgMaintenance MessageType = "maintenance"

	MsgError MessageType = "error"
)
