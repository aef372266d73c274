// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// geminiKeyEnv names the environment variable holding the Gemini API key.
const geminiKeyEnv = "GEMINI_API_KEY"

var (
	// Session options
	colourFlag = flag.String("colour", "white", "Side you play: white or black")
	retries    = flag.Int("retries", 3, "Attempts an automated opponent gets per turn")
	fallback   = flag.Bool("fallback", true, "Play the first legal move when the opponent runs out of attempts")
	workers    = flag.Int("workers", 1, "Workers used for legal move generation")
	startFEN   = flag.String("fen", "", "Start from this FEN position instead of the initial position")

	// Opponent options
	agentFlag = flag.String("agent", "library", "Opponent: library, gemini, uci or human")
	seed      = flag.Int64("seed", 0, "Random seed for the library opponent (0 = time-based)")
	model     = flag.String("model", "", "Gemini model name")
	uciPath   = flag.String("uci-path", "stockfish", "Path to a UCI engine binary")
	moveTime  = flag.Duration("movetime", 500*time.Millisecond, "Thinking time per UCI engine move")

	// Archive options
	dbDir = flag.String("db", "", "Game archive directory (default: platform data directory)")
	noDB  = flag.Bool("nodb", false, "Do not archive games")

	// Spectator server
	serveAddr = flag.String("serve", "", "Serve a read-only spectator API on this address (e.g. :8080)")

	// Output options
	format = flag.String("format", "text", "Output format: text or json")
	hints  = flag.Bool("hints", false, "Show legal moves before each of your turns")

	// Logging
	logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	logJSON  = flag.Bool("log-json", false, "Write logs as JSON")
	logFile  = flag.String("log-file", "", "Write logs to this file instead of stderr")

	// Info
	version = flag.Bool("version", false, "Show version")
	help    = flag.Bool("h", false, "Show help")
)

// applyFlags applies command-line flags to the configuration and validates it.
func applyFlags(cfg *config.Config) error {
	if err := applySessionFlags(cfg); err != nil {
		return err
	}
	applyAgentFlags(cfg)
	applyStorageFlags(cfg)
	applyOutputFlags(cfg)
	applyLogFlags(cfg)
	return cfg.Validate()
}

// applySessionFlags configures the turn loop.
func applySessionFlags(cfg *config.Config) error {
	colour, ok := chess.ParseColour(*colourFlag)
	if !ok {
		return fmt.Errorf("unknown colour %q: %w", *colourFlag, errors.ErrInvalidConfig)
	}
	cfg.Session.HumanColour = colour
	cfg.Session.MaxAgentRetries = *retries
	cfg.Session.FallbackToLegalMove = *fallback
	cfg.Session.Workers = *workers
	cfg.Session.StartFEN = *startFEN
	return nil
}

// applyAgentFlags selects and configures the opponent.
func applyAgentFlags(cfg *config.Config) {
	cfg.Agent.Kind = config.AgentKind(*agentFlag)
	cfg.Agent.Seed = *seed
	cfg.Agent.EnginePath = *uciPath
	cfg.Agent.MoveTime = *moveTime
	if *model != "" {
		cfg.Agent.Model = *model
	}
	if cfg.Agent.Kind == config.AgentGemini {
		cfg.Agent.APIKey = os.Getenv(geminiKeyEnv)
	}
}

// applyStorageFlags configures the game archive and the spectator server.
func applyStorageFlags(cfg *config.Config) {
	if *noDB {
		cfg.Storage.Enabled = false
	}
	cfg.Storage.Dir = *dbDir

	if *serveAddr != "" {
		cfg.Server.Enabled = true
		cfg.Server.Addr = *serveAddr
	}
}

// applyOutputFlags configures how the game is presented.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.Format = config.OutputFormat(*format)
	cfg.Output.ShowLegalMoves = *hints
}

// applyLogFlags configures the logger.
func applyLogFlags(cfg *config.Config) {
	cfg.Log.Level = *logLevel
	cfg.Log.JSON = *logJSON
	cfg.Log.File = *logFile
}
