// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the concrete store, archive,
// and logger and injects them into the tools that depend on them. No
// business logic lives here — only wiring.
package server

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/nmoreno/semplan/internal/archive"
	"github.com/nmoreno/semplan/internal/store"
	"github.com/nmoreno/semplan/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config holds the server's environment-driven settings. Every field has
// a working default so the server runs with zero configuration.
type Config struct {
	// ScheduleTTL is the idle lifetime of an in-memory schedule handle.
	ScheduleTTL time.Duration
	// SweepInterval is how often expired handles are collected.
	SweepInterval time.Duration
	// ArchiveDir is where the saved-plans database lives.
	ArchiveDir string
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
}

// LoadConfig reads settings from the environment, honoring a .env file in
// the working directory when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		ScheduleTTL:   30 * time.Minute,
		SweepInterval: 5 * time.Minute,
		ArchiveDir:    archive.DefaultConfig().DataDir,
		LogLevel:      "info",
	}
	if v := os.Getenv("SEMPLAN_SCHEDULE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScheduleTTL = d
		}
	}
	if v := os.Getenv("SEMPLAN_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}
	if v := os.Getenv("SEMPLAN_ARCHIVE_DIR"); v != "" {
		cfg.ArchiveDir = v
	}
	if v := os.Getenv("SEMPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// NewLogger builds the process logger. Logs go to stderr — stdout is the
// MCP transport and must stay clean.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

// New creates and configures the MCP server with all schedule tools
// registered. This is the single place where dependencies are resolved.
//
// The returned cleanup function stops the store's sweeper and closes the
// archive database; it must be called on shutdown (typically via defer)
// and is always non-nil, even if archive init failed.
func New(cfg Config) (*server.MCPServer, func(), error) {
	log := NewLogger(cfg.LogLevel)

	scheduleStore := store.New(store.Config{
		TTL:           cfg.ScheduleTTL,
		SweepInterval: cfg.SweepInterval,
		Logger:        log.With().Str("component", "store").Logger(),
	})
	cleanup := scheduleStore.Close

	s := server.NewMCPServer(
		"semplan",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register schedule tools ---

	generateTool := tools.NewGenerateTool(scheduleStore)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	getTool := tools.NewGetTool(scheduleStore)
	s.AddTool(getTool.Definition(), getTool.Handle)

	addCourseTool := tools.NewAddCourseTool(scheduleStore)
	s.AddTool(addCourseTool.Definition(), addCourseTool.Handle)

	removeCourseTool := tools.NewRemoveCourseTool(scheduleStore)
	s.AddTool(removeCourseTool.Definition(), removeCourseTool.Handle)

	moveCourseTool := tools.NewMoveCourseTool(scheduleStore)
	s.AddTool(moveCourseTool.Definition(), moveCourseTool.Handle)

	swapCoursesTool := tools.NewSwapCoursesTool(scheduleStore)
	s.AddTool(swapCoursesTool.Definition(), swapCoursesTool.Handle)

	removeSemesterTool := tools.NewRemoveSemesterTool(scheduleStore)
	s.AddTool(removeSemesterTool.Definition(), removeSemesterTool.Handle)

	setSemesterTypeTool := tools.NewSetSemesterTypeTool(scheduleStore)
	s.AddTool(setSemesterTypeTool.Definition(), setSemesterTypeTool.Handle)

	getSemesterTool := tools.NewGetSemesterTool(scheduleStore)
	s.AddTool(getSemesterTool.Definition(), getSemesterTool.Handle)

	findCoursesTool := tools.NewFindCoursesTool(scheduleStore)
	s.AddTool(findCoursesTool.Definition(), findCoursesTool.Handle)

	creditSummaryTool := tools.NewCreditSummaryTool(scheduleStore)
	s.AddTool(creditSummaryTool.Definition(), creditSummaryTool.Handle)

	applyEditTool := tools.NewApplyEditTool(scheduleStore)
	s.AddTool(applyEditTool.Definition(), applyEditTool.Handle)

	// --- Register archive tools ---
	//
	// The archive is an independent subsystem: if it fails to initialize,
	// the schedule tools keep working. We log a warning and skip save/load
	// registration — the server is still fully functional for editing.

	planArchive, archErr := archive.New(archive.Config{DataDir: cfg.ArchiveDir})
	if archErr != nil {
		log.Warn().Err(archErr).Msg("plan archive disabled")
	} else {
		storeCleanup := cleanup
		cleanup = func() {
			storeCleanup()
			if err := planArchive.Close(); err != nil {
				log.Warn().Err(err).Msg("archive close")
			}
		}

		saveTool := tools.NewSaveTool(scheduleStore, planArchive)
		s.AddTool(saveTool.Definition(), saveTool.Handle)

		loadTool := tools.NewLoadTool(scheduleStore, planArchive)
		s.AddTool(loadTool.Definition(), loadTool.Handle)
	}

	log.Info().Str("version", Version).Msg(fmt.Sprintf("semplan configured (ttl %s)", cfg.ScheduleTTL))
	return s, cleanup, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the schedule tools effectively.
func serverInstructions() string {
	return `You have access to semplan, a degree-schedule planning MCP server.

## What semplan does
It holds multi-year academic course schedules and lets you edit them through
small, safe operations. You never edit the schedule text yourself — you call
tools, and semplan keeps the schedule consistent (unique course codes, credit
totals that always match the courses, academic vs co-op semesters).

## Workflow
1. Generate or receive a schedule (markdown plan or JSON) and register it with
   plan_generate. Keep the returned scheduleId — every other tool needs it.
2. Edit incrementally: plan_add_course, plan_remove_course, plan_move_course,
   plan_swap_courses, plan_remove_semester, plan_set_semester_type.
3. Inspect: plan_get, plan_get_semester, plan_find_courses, plan_credit_summary.
4. If an external agent produced a revised schedule as free text, apply it with
   plan_apply_edit — semplan extracts the schedule from the text; if it cannot,
   the existing schedule is kept and a warning is added.
5. Persist across sessions with plan_save (by the user's email) and get it back
   later with plan_load.

## Rules
- Every response is JSON: {success, message, status, data?, schedule?}.
  When success is false, read message and fix your call — the stored schedule
  was not changed.
- Terms are "Season Year" labels like "Fall 2026". Matching is case-insensitive.
- Course codes are unique across the whole schedule. ELEC / ELECTIVE are
  placeholder codes for unresolved electives and may repeat.
- Co-op semesters hold no courses. Convert a semester with
  plan_set_semester_type before adding courses to it.
- Credits per course are 1-6.
- scheduleIds expire after a period of inactivity. If you get a not-found
  error for an id you were using, re-register with plan_generate or reload
  with plan_load.`
}
