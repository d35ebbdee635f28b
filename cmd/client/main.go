package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anibalanto/cardascii-24game/internal/logger"
	"github.com/anibalanto/cardascii-24game/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "server address")
	logDir := flag.String("log-dir", "", "directory of debug.log (default ~/.cardascii)")
	flag.Parse()

	// the TUI owns stdout
	if err := logger.Init(*logDir); err != nil {
		log.Printf("Logging to file disabled: %v", err)
	}
	defer logger.Close()

	serverURL := *serverAddr
	if !strings.HasPrefix(serverURL, "ws://") && !strings.HasPrefix(serverURL, "wss://") {
		serverURL = fmt.Sprintf("ws://%s/ws", serverURL)
	}

	model := ui.NewOnlineModel(serverURL)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Client failed: %v", err)
	}
}
