// Package main is the entry point for the costwatch TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bgeneto/costwatch/internal/app"
	"github.com/bgeneto/costwatch/internal/config"
	"github.com/bgeneto/costwatch/internal/services"
	"github.com/bgeneto/costwatch/internal/ui/tabs/dashboard"
	"github.com/bgeneto/costwatch/internal/ui/tabs/info"
	"github.com/bgeneto/costwatch/internal/ui/tabs/tables"
	"github.com/bgeneto/costwatch/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the usage service, the snapshot cache and the file watcher
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),
		tables.New(state),
		info.New(state, cfg, svcManager.Database() != nil),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`costwatch - Monthly API usage and cost dashboard

Usage:
  costwatch [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Dashboard, Tables, Info)
  Tab/Shift+Tab   Navigate between tabs
  n/p             Next/previous month
  0               Clear the month selection
  j/k, Up/Down    Scroll / navigate sections
  Enter           Expand or collapse a table section
  r               Reload the current month
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  COSTWATCH_DATA_DIR      Directory holding costs-<year>-<month>.json files (default: /data)
  COSTWATCH_YEAR          Calendar year to resolve files for (default: current year)
  CACHE_DB_PATH           SQLite snapshot cache path
  COST_ALERT_THRESHOLD    Monthly cost that triggers a desktop alert (0 disables)
  WATCH_ENABLED           Reload the active month when its file changes (default: true)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/costwatch/.env
  - ~/.costwatch/.env`)
}
