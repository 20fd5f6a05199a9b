// Package main is the entry point for the glimpse application.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/glimpse-tui/glimpse/internal/config"
	"github.com/glimpse-tui/glimpse/internal/tui"
	"github.com/glimpse-tui/glimpse/internal/tui/events"
	"github.com/glimpse-tui/glimpse/internal/tui/styles"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "glimpse: not a directory: %s\n", dir)
		os.Exit(1)
	}

	manager := config.NewManager(os.Getenv("GLIMPSE_CONFIG"))
	if err := manager.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "glimpse: bad config: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.Get()

	styles.SetDefaultManager(styles.NewManager(cfg.Theme))

	broker := events.NewBroker()
	model, err := tui.New(dir, cfg, broker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glimpse: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "glimpse: %v\n", err)
		os.Exit(1)
	}
}
