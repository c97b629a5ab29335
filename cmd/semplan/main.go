// Semplan: degree-schedule planning MCP server.
//
// An MCP server that lets an AI agent (or any MCP client) build and edit
// multi-year academic course schedules through structured operations,
// keeping the schedule model consistent no matter how messy the agent's
// output is.
//
// Usage:
//
//	semplan serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	planserver "github.com/nmoreno/semplan/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("semplan v%s\n", planserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg := planserver.LoadConfig()
	s, cleanup, err := planserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Println(`semplan - degree-schedule planning MCP server

Usage:
  semplan serve      Start the MCP server (stdio transport)
  semplan version    Print version
  semplan help       Show this help

Configuration (environment or .env):
  SEMPLAN_SCHEDULE_TTL      Idle lifetime of a schedule handle (default 30m)
  SEMPLAN_SWEEP_INTERVAL    Eviction sweep interval (default 5m)
  SEMPLAN_ARCHIVE_DIR       Saved-plans database directory (default ~/.semplan)
  SEMPLAN_LOG_LEVEL         debug, info, warn, error (default info)`)
}
