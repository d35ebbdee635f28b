package transport

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anibalanto/cardascii-24game/internal/logger"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

func (c *Client) readPump(conn *websocket.Conn) {
	defer c.handleReadExit()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Printf("Bad frame from server: %v", err)
			continue
		}

		c.processMessage(msg)
	}
}

// handleReadExit reconnects a dropped session unless the client was closed on purpose.
func (c *Client) handleReadExit() {
	if r := recover(); r != nil {
		logger.LogPanic(r)
	}

	if c.isClosed() {
		if c.OnClose != nil {
			c.OnClose()
		}
		return
	}

	if _, token := c.session(); token != "" && !c.reconnecting.Load() {
		c.stopWriter()
		go c.tryReconnect()
		return
	}

	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}

// stopWriter ends the write pump of a dropped connection.
func (c *Client) stopWriter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.send = nil
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
		if c.OnError != nil {
			c.OnError(err)
		}
	}
}

func (c *Client) processMessage(msg *protocol.Message) {
	reconnected := c.handleInternalMessage(msg)

	if c.OnMessage != nil {
		c.OnMessage(msg)
	}

	select {
	case c.receive <- msg:
	default:
	}

	// after the message is delivered
	if reconnected && c.OnReconnect != nil {
		c.OnReconnect()
	}
}

func (c *Client) handleInternalMessage(msg *protocol.Message) bool {
	switch msg.Type {
	case protocol.MsgConnected:
		if payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			c.mu.Lock()
			// a reconnecting client keeps its identity until the server confirms it
			if !c.reconnecting.Load() {
				c.playerID = payload.PlayerID
				c.playerName = payload.PlayerName
				c.reconnectToken = payload.ReconnectToken
			}
			c.mu.Unlock()
			c.SetAnswerWidth(payload.AnswerWidth)
		}
	case protocol.MsgGameStart:
		if payload, err := codec.ParsePayload[protocol.GameStartPayload](msg); err == nil {
			c.SetAnswerWidth(payload.AnswerWidth)
		}
	case protocol.MsgReconnected:
		c.reconnecting.Store(false)
		return true
	case protocol.MsgPong:
		if payload, err := codec.ParsePayload[protocol.PongPayload](msg); err == nil {
			latency := time.Now().UnixMilli() - payload.ClientTimestamp
			c.latency.Store(latency)
			if c.OnLatencyUpdate != nil {
				c.OnLatencyUpdate(latency)
			}
		}
	}
	return false
}

func (c *Client) writePump(conn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
	}()

	for {
		select {
		case message := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				_ = conn.Close()
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}

		case <-done:
			return
		}
	}
}
