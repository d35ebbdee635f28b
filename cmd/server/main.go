package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anibalanto/cardascii-24game/internal/config"
	"github.com/anibalanto/cardascii-24game/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path of the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// SIGTERM lets running tables finish, SIGINT stops right away
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		if sig == syscall.SIGTERM {
			log.Println("Shutting down gracefully...")
			srv.GracefulShutdown(cfg.Game.ShutdownTimeoutDuration())
		} else {
			log.Println("Shutting down...")
			srv.Shutdown()
		}
		os.Exit(0)
	}()

	log.Println("🎮 Starting the 24 server...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
