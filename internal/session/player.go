package session

import (
	"context"

	"github.com/lgbarn/clichess-go/internal/chess"
)

// Player chooses moves for one side.
type Player interface {
	// Name identifies the player in banners and the archive.
	Name() string
	// NextMove returns a candidate move. The session validates it.
	NextMove(ctx context.Context, turn Turn) (chess.Move, error)
}

// Interactive is implemented by players that are asked again without limit
// when a move is rejected.
type Interactive interface {
	Interactive() bool
}

// Turn describes the request for a move.
type Turn struct {
	Snapshot Snapshot
	Colour   chess.Colour
	// Attempt counts from 1 within the turn.
	Attempt int
	// Rejections lists earlier refused suggestions in this turn, oldest first.
	Rejections []Rejection
}

// Rejection explains why a suggestion was refused.
type Rejection struct {
	Colour  chess.Colour
	Attempt int
	// Move is the suggested move in coordinate form, empty when none was given.
	Move   string
	Reason string
	Err    error
}

// Rejected reports whether move was already refused this turn.
func (t Turn) Rejected(move chess.Move) bool {
	text := move.String()
	for _, r := range t.Rejections {
		if r.Move == text {
			return true
		}
	}
	return false
}

func isInteractive(p Player) bool {
	i, ok := p.(Interactive)
	return ok && i.Interactive()
}
