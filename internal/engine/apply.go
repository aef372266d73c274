package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// ApplyMove moves the piece on move.From to move.To, empties move.From,
// passes the turn and returns whatever was captured (chess.Empty if
// nothing). The move must already have passed CheckMove; it is not
// validated again.
//
// A move onto a king can only reach here if the legality filter is broken.
// It is refused with ErrKingCapture and the board is left untouched.
func ApplyMove(board *chess.Board, move chess.Move) (chess.Piece, error) {
	captured := board.Get(move.To)
	if captured.Type == chess.King {
		return chess.Empty, errors.Wrapf(errors.ErrKingCapture, "%s takes %s", move, captured)
	}

	piece := board.Get(move.From)
	board.Set(move.From, chess.Empty)
	board.Set(move.To, piece)
	board.ToMove = board.ToMove.Opposite()

	return captured, nil
}
