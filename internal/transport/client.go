// Package transport is the websocket client of the terminal game.
package transport

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	heartbeatInterval    = 5 * time.Second
	maxReconnectAttempts = 5
	reconnectInterval    = 2 * time.Second
	maxReconnectBackoff  = 30 * time.Second

	bufferSize = 256
)

var (
	ErrClosed     = errors.New("connection closed")
	ErrBufferFull = errors.New("send buffer full")
	ErrNoSession  = errors.New("no reconnect token")
)

// Client talks to the game server. Callbacks run on the read goroutine.
type Client struct {
	ServerURL string

	conn    *websocket.Conn
	send    chan []byte
	receive chan *protocol.Message
	done    chan struct{}

	answerWidth    int // set by the server greeting
	playerID       string
	playerName     string
	reconnectToken string

	latency atomic.Int64

	OnMessage       func(*protocol.Message)
	OnError         func(error)
	OnClose         func()
	OnReconnecting  func(attempt, maxAttempts int)
	OnReconnect     func()
	OnLatencyUpdate func(int64)

	mu             sync.RWMutex
	closed         bool
	reconnecting   atomic.Bool
	reconnectDelay time.Duration
}

// NewClient creates a client for a ws:// or wss:// URL.
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL:      serverURL,
		answerWidth:    protocol.DefaultAnswerWidth,
		receive:        make(chan *protocol.Message, bufferSize),
		reconnectDelay: reconnectInterval,
	}
}

func (c *Client) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout:  10 * time.Second,
		EnableCompression: false,
	}
	conn, resp, err := dialer.Dial(c.ServerURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// Connect dials the server and starts the pumps.
func (c *Client) Connect() error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	c.start(conn)
	return nil
}

func (c *Client) start(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.send = make(chan []byte, bufferSize)
	c.done = make(chan struct{})
	send, done := c.send, c.done
	c.mu.Unlock()

	go c.readPump(conn)
	go c.writePump(conn, send, done)
}

// SendMessage queues msg as a binary frame.
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.send == nil {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive blocks until a message arrives or the client is closed.
func (c *Client) Receive() (*protocol.Message, error) {
	return c.ReceiveWithTimeout(0)
}

// ReceiveWithTimeout waits at most timeout; zero waits forever.
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case msg := <-c.receive:
		return msg, nil
	case <-expired:
		return nil, errors.New("receive timeout")
	case <-done:
		return nil, ErrClosed
	}
}

// Close ends the connection for good; no reconnect is attempted.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		if c.done != nil {
			close(c.done)
		}
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Identity returns what the server assigned on connect.
func (c *Client) Identity() (playerID, playerName string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID, c.playerName
}

// AnswerWidth is the byte width answers are padded to.
func (c *Client) AnswerWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.answerWidth
}

// SetAnswerWidth overrides the width; non-positive values are ignored.
func (c *Client) SetAnswerWidth(width int) {
	if width <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answerWidth = width
}

func (c *Client) session() (playerID, token string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID, c.reconnectToken
}

// Latency is the last measured round trip in milliseconds.
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}
