package server

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/anibalanto/cardascii-24game/internal/protocol"
	"github.com/anibalanto/cardascii-24game/internal/protocol/codec"
)

const statsInterval = 30 * time.Second

func (s *Server) monitorStats() {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.logStats()
		case <-s.stopStats:
			return
		}
	}
}

func (s *Server) logStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	log.Printf("📊 Online: %d | Tables: %d | Queue: %d | Goroutines: %d | Connections: %d/%d | Memory: %.2f MB",
		s.GetOnlineCount(),
		s.handler.GameCount(),
		s.matcher.GetQueueLength(),
		runtime.NumGoroutine(),
		len(s.semaphore),
		s.maxConnections,
		float64(m.Alloc)/1024/1024)
}

// EnterMaintenanceMode refuses new connections, rooms and matches.
// Running tables play on.
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.MustNewMessage(protocol.MsgMaintenance, protocol.MaintenancePayload{Maintenance: true}))

	log.Println("🔧 Maintenance mode: no new connections or rooms")
}

func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown waits up to timeout for the running tables to finish,
// aborts the ones still running and shuts down.
func (s *Server) GracefulShutdown(timeout time.Duration) {
	s.EnterMaintenanceMode()

	s.waitForTables(timeout, s.config.Game.ShutdownCheckIntervalDuration())

	if active := s.handler.GameCount(); active > 0 {
		log.Printf("⚠️ Timed out with %d tables still running, aborting them", active)
		s.handler.AbortAll(protocol.ReasonShutdown)
	}

	s.BroadcastToLobby(codec.NewErrorMessageWithText(protocol.ErrCodeServerMaintenance,
		fmt.Sprintf("🚧 Server shuts down in %d seconds", s.config.Game.RoomCleanupDelay)))

	time.Sleep(s.config.Game.RoomCleanupDelayDuration())
	s.Shutdown()
}

// waitForTables reports whether every table ended before the timeout.
func (s *Server) waitForTables(timeout, interval time.Duration) bool {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		active := s.handler.GameCount()
		if active == 0 {
			log.Println("✅ Every table has finished")
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		log.Printf("⏳ Waiting for %d tables to finish...", active)
		<-ticker.C
	}
}

// Shutdown closes every connection, stops the background loops and closes redis.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.stopStats)

		if s.httpServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = s.httpServer.Shutdown(ctx)
			cancel()
		}

		s.clientsMu.RLock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clientsMu.RUnlock()

		s.rateLimiter.Stop()
		s.roomManager.Stop()
		s.sessionManager.Stop()

		_ = s.redis.Close()

		log.Println("Server stopped")
	})
}
