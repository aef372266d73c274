package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// Run plays the session to its end. Each turn the side to move is classified;
// on a terminal verdict Run returns the final state. Otherwise the player for
// that side is asked for moves until one is accepted. Non-interactive players
// get MaxAgentRetries attempts, after which the first legal move is played or,
// with fallback disabled, ErrRetriesExhausted is returned.
func Run(ctx context.Context, s *Session, players map[chess.Colour]Player) (State, error) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if players[colour] == nil {
			return s.State(), fmt.Errorf("no player for %s: %w", colour, errors.ErrInvalidConfig)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.State(), err
		}

		state, _, err := s.Advance()
		if err != nil {
			return state, err
		}
		if state.IsTerminal() {
			s.logger.Info("game over", zap.Stringer("state", state))
			return state, nil
		}

		colour := s.ToMove()
		if err := s.playTurn(ctx, players[colour], colour); err != nil {
			return s.State(), err
		}
	}
}

func (s *Session) playTurn(ctx context.Context, p Player, colour chess.Colour) error {
	limit := s.cfg.MaxAgentRetries
	if isInteractive(p) {
		limit = 0
	}

	var rejections []Rejection
	for attempt := 1; limit == 0 || attempt <= limit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		turn := Turn{
			Snapshot:   s.Snapshot(),
			Colour:     colour,
			Attempt:    attempt,
			Rejections: append([]Rejection(nil), rejections...),
		}
		move, err := p.NextMove(ctx, turn)
		if err != nil {
			if errors.Is(err, errors.ErrQuit) || ctx.Err() != nil {
				return err
			}
			r := Rejection{Colour: colour, Attempt: attempt, Reason: reasonFor(err), Err: err}
			rejections = append(rejections, r)
			s.reject(r)
			continue
		}

		if _, err := s.Submit(move); err != nil {
			if errors.IsFatal(err) || errors.Is(err, errors.ErrGameOver) {
				return err
			}
			r := Rejection{Colour: colour, Attempt: attempt, Move: move.String(), Reason: errors.Reason(err), Err: err}
			rejections = append(rejections, r)
			s.reject(r)
			continue
		}
		return nil
	}

	if !s.cfg.FallbackToLegalMove {
		return &errors.MoveError{
			Err:     errors.ErrRetriesExhausted,
			Colour:  colour.String(),
			Attempt: limit,
		}
	}

	moves, err := s.LegalMoves()
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return errors.Wrapf(errors.ErrNoSuggestion, "%s has no legal move", colour)
	}
	s.logger.Warn("attempts exhausted, playing first legal move",
		zap.Stringer("colour", colour),
		zap.String("player", p.Name()),
		zap.Stringer("move", moves[0]))
	_, err = s.submit(moves[0], true)
	return err
}

// reasonFor names a player error that produced no move.
func reasonFor(err error) string {
	if r := errors.Reason(err); r != "Unknown" {
		return r
	}
	return "NoSuggestion"
}
