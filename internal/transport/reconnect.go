package transport

import (
	"log"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/logger"
	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

// Reconnect asks the server to hand this connection the previous session.
func (c *Client) Reconnect() error {
	playerID, token := c.session()
	if token == "" || playerID == "" {
		return ErrNoSession
	}
	return c.SendMessage(codec.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    token,
		PlayerID: playerID,
	}))
}

// StartHeartbeat pings the server every few seconds to measure latency.
func (c *Client) StartHeartbeat() {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for range ticker.C {
			if c.isClosed() {
				return
			}
			if c.IsConnected() && !c.reconnecting.Load() {
				_ = c.Ping()
			}
		}
	}()
}

// tryReconnect redials with exponential backoff.
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	backoff := c.reconnectDelay
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		if c.isClosed() {
			return
		}
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, maxReconnectAttempts)
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, maxReconnectBackoff)

		conn, err := c.dial()
		if err != nil {
			log.Printf("Reconnect attempt %d failed: %v", attempt, err)
			continue
		}

		c.start(conn)
		if err := c.Reconnect(); err != nil {
			_ = conn.Close()
			continue
		}
		// MsgReconnected clears the flag
		return
	}

	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
