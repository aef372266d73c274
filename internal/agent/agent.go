// Package agent provides the players that can take a side in a session: a
// human at the terminal and several automated opponents.
package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/session"
)

// Chatter answers free-text messages sent by the human during a turn.
type Chatter interface {
	Chat(ctx context.Context, snap session.Snapshot, message string) (string, error)
}

var (
	_ session.Player      = (*Human)(nil)
	_ session.Player      = (*Gemini)(nil)
	_ session.Player      = (*UCI)(nil)
	_ session.Player      = (*Library)(nil)
	_ session.Interactive = (*Human)(nil)
	_ Chatter             = (*Gemini)(nil)
	_ Chatter             = (*Library)(nil)
	_ io.Closer           = (*UCI)(nil)
)

// Deps carries what automated opponents may need beyond their config.
type Deps struct {
	Logger *zap.Logger
	// Transcript receives opponent commentary. Nil discards it.
	Transcript io.Writer
	// In and Out serve a second human player.
	In  io.Reader
	Out io.Writer
}

// New builds the opponent selected by cfg. Opponents that hold resources
// implement io.Closer.
func New(ctx context.Context, cfg *config.AgentConfig, deps Deps) (session.Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.OrNop(deps.Logger)
	logger = logger.With(zap.String("agent", string(cfg.Kind)))

	switch cfg.Kind {
	case config.AgentLibrary:
		return NewLibrary(cfg.Seed, logger), nil
	case config.AgentGemini:
		return NewGemini(cfg, logger, WithTranscript(deps.Transcript)), nil
	case config.AgentUCI:
		return StartUCI(ctx, cfg, logger)
	case config.AgentHuman:
		return NewHuman("Opponent", deps.In, deps.Out), nil
	}
	return nil, fmt.Errorf("unknown agent %q: %w", cfg.Kind, errors.ErrInvalidConfig)
}

// describeRejection turns a rejection into a sentence for prompts and the terminal.
func describeRejection(r session.Rejection) string {
	var sb strings.Builder
	if r.Move != "" {
		fmt.Fprintf(&sb, "%s was rejected", r.Move)
	} else {
		sb.WriteString("no move was given")
	}
	if r.Err != nil {
		fmt.Fprintf(&sb, ": %v", r.Err)
	} else if r.Reason != "" {
		fmt.Fprintf(&sb, " (%s)", r.Reason)
	}
	return sb.String()
}

// colourName is the lowercase side name used in prompts.
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
