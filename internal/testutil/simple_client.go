//go:build !production

package testutil

import (
	"sync"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
)

// SimpleClient records what it is sent, for tests that need no expectations.
type SimpleClient struct {
	ID       string
	Name     string
	RoomCode string
	Messages []*protocol.Message

	mu sync.Mutex
}

// NewSimpleClient creates a SimpleClient.
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (m *SimpleClient) GetID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ID
}

func (m *SimpleClient) GetName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Name
}

func (m *SimpleClient) GetRoom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RoomCode
}

func (m *SimpleClient) SetRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoomCode = code
}

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
}

func (m *SimpleClient) Close() {}

func (m *SimpleClient) SetIdentity(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ID = id
	m.Name = name
}

// SentMessages returns a copy of everything sent so far.
func (m *SimpleClient) SentMessages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*protocol.Message(nil), m.Messages...)
}

// LastOfType returns the most recent message of type t, or nil.
func (m *SimpleClient) LastOfType(t protocol.MessageType) *protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Type == t {
			return m.Messages[i]
		}
	}
	return nil
}

// CountOfType counts the messages of type t.
func (m *SimpleClient) CountOfType(t protocol.MessageType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.Messages {
		if msg.Type == t {
			n++
		}
	}
	return n
}

// SentMessagesOfType returns the messages of type t in send order.
func (m *SimpleClient) SentMessagesOfType(t protocol.MessageType) []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*protocol.Message
	for _, msg := range m.Messages {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}
