package types

import (
	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// ServerInterface is what handlers need from the server; it breaks the import cycle.
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
	BroadcastToLobby(msg *protocol.Message)
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// ClientInterface is one connected player.
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// Reidentifier is implemented by clients that can take over a previous identity on reconnect.
type Reidentifier interface {
	SetIdentity(id, name string)
}
