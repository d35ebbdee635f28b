// Package server is the websocket front of the game: it accepts players,
// guards the endpoint and hands every message to the handler.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/anibalanto/cardascii-24game/internal/config"
	"github.com/anibalanto/cardascii-24game/internal/game/match"
	"github.com/anibalanto/cardascii-24game/internal/game/room"
	"github.com/anibalanto/cardascii-24game/internal/game/rule"
	"github.com/anibalanto/cardascii-24game/internal/server/handler"
	"github.com/anibalanto/cardascii-24game/internal/server/session"
	"github.com/anibalanto/cardascii-24game/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are checked by OriginChecker before the upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
	// frames are a few hundred bytes, compression does not pay off
	EnableCompression: false,
}

// Server owns the connected clients and the game managers.
type Server struct {
	config         *config.Config
	redis          *redis.Client
	redisStore     *storage.RedisStore
	leaderboard    *storage.LeaderboardManager
	roomManager    *room.RoomManager
	matcher        *match.Matcher
	sessionManager *session.SessionManager
	clients        map[string]*Client
	clientsMu      sync.RWMutex
	handler        *handler.Handler

	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter
	ipFilter       *IPFilter

	maxConnections int
	semaphore      chan struct{} // one slot per open connection

	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	httpServer *http.Server
	stopStats  chan struct{}
	stopOnce   sync.Once
}

// NewServer connects to redis and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return newServer(cfg, rdb)
}

func newServer(cfg *config.Config, rdb *redis.Client) (*Server, error) {
	settings, err := tableSettings(&cfg.Game)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		redis:          rdb,
		redisStore:     storage.NewRedisStore(rdb),
		leaderboard:    storage.NewLeaderboardManager(rdb),
		clients:        make(map[string]*Client),
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		ipFilter:       NewIPFilter(),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		stopStats:      make(chan struct{}),
	}

	s.sessionManager = session.NewSessionManager(s.redisStore)
	s.roomManager = room.NewRoomManager(s.redisStore, cfg.Game.RoomTimeoutDuration(), cfg.Game.Players)
	s.matcher = match.NewMatcher(match.MatcherDeps{
		RoomManager: s.roomManager,
		RedisStore:  s.redisStore,
	})

	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:         s,
		RoomManager:    s.roomManager,
		Matcher:        s.matcher,
		Leaderboard:    s.leaderboard,
		SessionManager: s.sessionManager,
		Settings:       settings,
	})

	log.Printf("🔒 Security: connections %d/s, messages %d/s, max connections %d",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond, cfg.Server.MaxConnections)
	log.Printf("🃏 Tables: %d players, target %d, turn timeout %v, jokers %s",
		cfg.Game.Players, settings.Target, settings.TurnTimeout, settings.Jokers)

	return s, nil
}

func tableSettings(cfg *config.GameConfig) (session.Settings, error) {
	jokers, err := rule.ParseJokerPolicy(cfg.Jokers)
	if err != nil {
		return session.Settings{}, fmt.Errorf("game.jokers: %w", err)
	}
	return session.Settings{
		Target:      int64(cfg.Target),
		Jokers:      jokers,
		TurnTimeout: cfg.TurnTimeoutDuration(),
		AnswerWidth: cfg.AnswerWidth,
	}, nil
}

// Routes returns the HTTP handler serving /ws and /health.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	go s.monitorStats()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second, // slowloris
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("🚀 Server listening on ws://%s/ws (CPUs: %d)", addr, runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
