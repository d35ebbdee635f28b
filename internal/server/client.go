package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/anibalanto/cardascii-24game/internal/logger"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be shorter than pongWait
	maxMessageSize = 4096

	sendBufferSize = 256
	// clients warned more often than this are disconnected
	maxRateWarnings = 5
)

// Client is one websocket connection. Its identity changes once when it
// takes over a dropped session on reconnect.
type Client struct {
	id       string
	name     string
	roomCode string
	IP       string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a client with a fresh id and nickname.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		id:     uuid.NewString(),
		name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) GetID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

func (c *Client) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = code
}

// SetIdentity adopts the id and name of a resumed session.
func (c *Client) SetIdentity(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
	c.name = name
}

// ReadPump decodes frames and hands them to the server's handler until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		frameType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Read error from %s: %v", c.GetName(), err)
			}
			return
		}

		allowed, warning := c.server.messageLimiter.AllowMessage(c.GetID())
		if !allowed {
			log.Printf("⚠️ Client %s (IP: %s) is sending too fast", c.GetName(), c.IP)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeRateLimit))
			if c.server.messageLimiter.GetWarningCount(c.GetID()) > maxRateWarnings {
				log.Printf("🚫 Client %s disconnected for flooding", c.GetName())
				return
			}
			continue
		}
		if warning {
			c.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeRateLimit, "slow down"))
		}

		msg, err := decodeFrame(frameType, data)
		if err != nil {
			log.Printf("Bad frame from %s: %v", c.GetName(), err)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// decodeFrame accepts JSON in text frames and the binary envelope otherwise.
func decodeFrame(frameType int, data []byte) (*protocol.Message, error) {
	if frameType == websocket.TextMessage {
		return codec.DecodeJSON(data)
	}
	return codec.Decode(data)
}

// WritePump writes queued frames and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues msg; a client whose buffer is full is closed.
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := codec.Encode(msg)
	if err != nil {
		log.Printf("Encode error: %v", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer of %s is full, closing", c.id)
		go c.Close()
	}
}

func (c *Client) handleDisconnect() {
	c.server.messageLimiter.RemoveClient(c.GetID())
	c.server.handler.OnDisconnect(c)
	c.Close()
	<-c.server.semaphore
	log.Printf("❌ Player %s (%s) disconnected", c.GetName(), c.GetID())
}

// Close stops the write pump, which closes the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
