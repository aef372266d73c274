package config

import (
	"time"

	"github.com/lgbarn/clichess-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithHumanColour sets the side the local player controls.
func (b *ConfigBuilder) WithHumanColour(colour chess.Colour) *ConfigBuilder {
	b.cfg.Session.HumanColour = colour
	return b
}

// WithRetries sets how many suggestions an opponent may make per turn.
func (b *ConfigBuilder) WithRetries(n int) *ConfigBuilder {
	b.cfg.Session.MaxAgentRetries = n
	return b
}

// WithFallback controls whether a legal move is played once retries run out.
func (b *ConfigBuilder) WithFallback(enabled bool) *ConfigBuilder {
	b.cfg.Session.FallbackToLegalMove = enabled
	return b
}

// WithWorkers sets the number of move enumeration workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Session.Workers = n
	return b
}

// WithStartFEN starts the session from a custom position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Session.StartFEN = fen
	return b
}

// WithAgent selects the opponent implementation.
func (b *ConfigBuilder) WithAgent(kind AgentKind) *ConfigBuilder {
	b.cfg.Agent.Kind = kind
	return b
}

// WithSeed fixes the library opponent's random seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Agent.Seed = seed
	return b
}

// WithGemini configures the Gemini opponent.
func (b *ConfigBuilder) WithGemini(apiKey, model string) *ConfigBuilder {
	b.cfg.Agent.Kind = AgentGemini
	b.cfg.Agent.APIKey = apiKey
	if model != "" {
		b.cfg.Agent.Model = model
	}
	return b
}

// WithUCI configures the UCI engine opponent.
func (b *ConfigBuilder) WithUCI(path string, moveTime time.Duration) *ConfigBuilder {
	b.cfg.Agent.Kind = AgentUCI
	b.cfg.Agent.EnginePath = path
	b.cfg.Agent.MoveTime = moveTime
	return b
}

// WithStorageDir sets the archive directory.
func (b *ConfigBuilder) WithStorageDir(dir string) *ConfigBuilder {
	b.cfg.Storage.Dir = dir
	return b
}

// WithoutStorage disables the game archive.
func (b *ConfigBuilder) WithoutStorage() *ConfigBuilder {
	b.cfg.Storage.Enabled = false
	return b
}

// WithInMemoryStorage keeps the archive in memory.
func (b *ConfigBuilder) WithInMemoryStorage() *ConfigBuilder {
	b.cfg.Storage.Enabled = true
	b.cfg.Storage.InMemory = true
	b.cfg.Storage.Dir = ""
	return b
}

// WithServer enables the spectator server on addr.
func (b *ConfigBuilder) WithServer(addr string) *ConfigBuilder {
	b.cfg.Server.Enabled = true
	b.cfg.Server.Addr = addr
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithJSONLogs switches to the JSON log encoder.
func (b *ConfigBuilder) WithJSONLogs(enabled bool) *ConfigBuilder {
	b.cfg.Log.JSON = enabled
	return b
}

// WithOutputFormat sets the presentation format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}
