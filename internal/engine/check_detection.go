package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// IsInCheck returns true if the given colour's king is in check.
// A board without that king yields ErrKingMissing rather than false.
func IsInCheck(board *chess.Board, colour chess.Colour) (bool, error) {
	king, ok := board.FindKing(colour)
	if !ok {
		return false, errors.Wrapf(errors.ErrKingMissing, "%s king", colour)
	}
	return IsSquareAttacked(board, king, colour.Opposite()), nil
}

// IsSquareAttacked returns true if any byColour piece could move to sq under
// the ordinary movement rules. Pawns attack only diagonally, and sliding
// pieces need a clear path.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, from := range board.Pieces(byColour) {
		if ValidateMove(board, chess.Move{From: from, To: sq}, false) == nil {
			return true
		}
	}
	return false
}

// Attackers returns the squares of byColour pieces attacking sq.
func Attackers(board *chess.Board, sq chess.Square, byColour chess.Colour) []chess.Square {
	var attackers []chess.Square
	for _, from := range board.Pieces(byColour) {
		if ValidateMove(board, chess.Move{From: from, To: sq}, false) == nil {
			attackers = append(attackers, from)
		}
	}
	return attackers
}
