// Package handler applies server messages to the client model.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
)

type messageHandler func(m model.Model, msg *protocol.Message) tea.Cmd

var messageHandlers = map[protocol.MessageType]messageHandler{
	// connection
	protocol.MsgConnected:   handleMsgConnected,
	protocol.MsgReconnected: handleMsgReconnected,
	protocol.MsgError:       handleMsgError,
	protocol.MsgMaintenance: handleMsgMaintenance,

	// rooms
	protocol.MsgRoomCreated:   handleMsgRoomCreated,
	protocol.MsgRoomJoined:    handleMsgRoomJoined,
	protocol.MsgMatchFound:    handleMsgMatchFound,
	protocol.MsgPlayerJoined:  handleMsgPlayerJoined,
	protocol.MsgPlayerLeft:    handleMsgPlayerLeft,
	protocol.MsgPlayerReady:   handleMsgPlayerReady,
	protocol.MsgPlayerOffline: handleMsgPlayerOffline,
	protocol.MsgPlayerOnline:  handleMsgPlayerOnline,

	// table
	protocol.MsgGameStart:    handleMsgGameStart,
	protocol.MsgTurnBegin:    handleMsgTurnBegin,
	protocol.MsgTurnContinue: handleMsgTurnContinue,
	protocol.MsgTurnEnd:      handleMsgTurnEnd,
	protocol.MsgGameOver:     handleMsgGameOver,

	// stats
	protocol.MsgStatsResult:       handleMsgStatsResult,
	protocol.MsgLeaderboardResult: handleMsgLeaderboardResult,
}

// HandleServerMessage dispatches msg; pongs and unknown types are ignored.
func HandleServerMessage(m model.Model, msg *protocol.Message) tea.Cmd {
	if handler, ok := messageHandlers[msg.Type]; ok {
		return handler(m, msg)
	}
	return nil
}
