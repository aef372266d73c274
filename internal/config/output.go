package config

import (
	"fmt"

	"github.com/lgbarn/clichess-go/internal/errors"
)

// OutputFormat selects how the session is presented on stdout.
type OutputFormat string

const (
	// TextFormat draws boards and banners for a terminal.
	TextFormat OutputFormat = "text"
	// JSONFormat writes one JSON object per snapshot or move.
	JSONFormat OutputFormat = "json"
)

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Format OutputFormat

	// ShowLegalMoves lists the legal moves before a human turn.
	ShowLegalMoves bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{Format: TextFormat}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case TextFormat, JSONFormat:
		return nil
	}
	return fmt.Errorf("unknown output format %q: %w", o.Format, errors.ErrInvalidConfig)
}
