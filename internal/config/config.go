// Package config provides configuration for the clichess session, its
// opponents, the game archive, the spectator server and logging.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// AgentKind selects the opponent implementation.
type AgentKind string

const (
	AgentLibrary AgentKind = "library" // random legal move from corentings/chess
	AgentGemini  AgentKind = "gemini"  // LLM over the Gemini HTTP API
	AgentUCI     AgentKind = "uci"     // external UCI engine process
	AgentHuman   AgentKind = "human"   // second human on the same terminal
)

// Config holds all program configuration.
type Config struct {
	Session *SessionConfig
	Agent   *AgentConfig
	Storage *StorageConfig
	Server  *ServerConfig
	Log     *LogConfig
	Output  *OutputConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Session: NewSessionConfig(),
		Agent:   NewAgentConfig(),
		Storage: NewStorageConfig(),
		Server:  NewServerConfig(),
		Log:     NewLogConfig(),
		Output:  NewOutputConfig(),
	}
}

// Validate checks every sub-config and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	for _, v := range []interface{ Validate() error }{c.Session, c.Agent, c.Storage, c.Server, c.Log, c.Output} {
		if err := v.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// SessionConfig holds settings for the turn loop.
type SessionConfig struct {
	// HumanColour is the side the local player controls.
	HumanColour chess.Colour

	// MaxAgentRetries is the number of suggestions an opponent may make per turn.
	MaxAgentRetries int

	// FallbackToLegalMove plays the first legal move once retries run out.
	// When false the session stops with ErrRetriesExhausted instead.
	FallbackToLegalMove bool

	// Workers is the number of goroutines used for legal move enumeration.
	Workers int

	// StartFEN optionally replaces the standard starting position.
	StartFEN string
}

// NewSessionConfig creates a SessionConfig with default values.
func NewSessionConfig() *SessionConfig {
	return &SessionConfig{
		HumanColour:         chess.White,
		MaxAgentRetries:     3,
		FallbackToLegalMove: true,
		Workers:             1,
	}
}

// Validate checks that the session configuration is valid.
func (s *SessionConfig) Validate() error {
	if s.MaxAgentRetries < 1 {
		return fmt.Errorf("max agent retries must be at least 1, got %d: %w", s.MaxAgentRetries, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", s.Workers, errors.ErrInvalidConfig)
	}
	return nil
}

// AgentConfig holds settings for the opponent.
type AgentConfig struct {
	Kind AgentKind

	// Seed drives the library opponent's move choice. Zero means time-based.
	Seed int64

	// Gemini settings.
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration

	// UCI settings.
	EnginePath string
	MoveTime   time.Duration
}

// NewAgentConfig creates an AgentConfig with default values.
func NewAgentConfig() *AgentConfig {
	return &AgentConfig{
		Kind:       AgentLibrary,
		Model:      "gemini-1.5-flash",
		Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
		Timeout:    30 * time.Second,
		EnginePath: "stockfish",
		MoveTime:   500 * time.Millisecond,
	}
}

// Validate checks that the agent configuration is valid.
func (a *AgentConfig) Validate() error {
	switch a.Kind {
	case AgentLibrary, AgentHuman:
	case AgentGemini:
		if a.APIKey == "" {
			return fmt.Errorf("gemini agent needs an API key: %w", errors.ErrInvalidConfig)
		}
		if a.Model == "" || a.Endpoint == "" {
			return fmt.Errorf("gemini agent needs a model and endpoint: %w", errors.ErrInvalidConfig)
		}
	case AgentUCI:
		if a.EnginePath == "" {
			return fmt.Errorf("uci agent needs an engine path: %w", errors.ErrInvalidConfig)
		}
		if a.MoveTime <= 0 {
			return fmt.Errorf("uci move time must be positive: %w", errors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown agent %q: %w", a.Kind, errors.ErrInvalidConfig)
	}
	return nil
}

// StorageConfig holds settings for the game archive.
type StorageConfig struct {
	Enabled bool

	// Dir is the database directory. Empty means the platform data directory.
	Dir string

	// InMemory keeps the archive in memory only (tests, throwaway sessions).
	InMemory bool
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{Enabled: true}
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	if s.InMemory && s.Dir != "" {
		return fmt.Errorf("storage dir %q set together with in-memory mode: %w", s.Dir, errors.ErrInvalidConfig)
	}
	return nil
}

// ServerConfig holds settings for the spectator HTTP server.
type ServerConfig struct {
	Enabled bool
	Addr    string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{Addr: ":8080"}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Enabled && s.Addr == "" {
		return fmt.Errorf("server enabled without an address: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool

	// File receives log output. Empty means stderr.
	File string
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// Validate checks that the log configuration is valid.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q: %w", l.Level, errors.ErrInvalidConfig)
}
