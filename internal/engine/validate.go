package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// ValidateMove checks move against bounds, ownership, capture and piece
// geometry rules. It does not consider whether the mover's king is left
// in check; see CheckMove for the full pipeline.
//
// With enforceTurn the moving piece must belong to board.ToMove. Check
// detection and move generation pass false to ask whether a piece could
// reach a square regardless of whose turn it is.
//
// The first failing rule is returned, cheapest first. Source and
// destination equality is checked before friendly capture, since a
// piece always occupies its own square.
func ValidateMove(board *chess.Board, move chess.Move, enforceTurn bool) error {
	if !move.From.InBounds() || !move.To.InBounds() {
		return errors.Wrapf(errors.ErrOutOfBounds, "%+v -> %+v", move.From, move.To)
	}

	piece := board.Get(move.From)
	if piece.IsEmpty() {
		return errors.Wrapf(errors.ErrEmptySource, "%s", move.From)
	}

	if enforceTurn && piece.Colour != board.ToMove {
		return errors.Wrapf(errors.ErrWrongTurn, "%s on %s, %s to move", piece, move.From, board.ToMove)
	}

	if move.From == move.To {
		return errors.Wrapf(errors.ErrNoOpMove, "%s", move)
	}

	target := board.Get(move.To)
	if !target.IsEmpty() && target.Colour == piece.Colour {
		return errors.Wrapf(errors.ErrFriendlyCapture, "%s onto %s", move, target)
	}

	return checkGeometry(board, piece, move)
}
