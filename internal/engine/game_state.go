package engine

import "github.com/lgbarn/clichess-go/internal/chess"

// Classify returns the state of the position for colour, which is always
// the side about to move. A missing king is returned as an error with no
// verdict.
func Classify(board *chess.Board, colour chess.Colour) (chess.GameResult, error) {
	inCheck, err := IsInCheck(board, colour)
	if err != nil {
		return chess.Ongoing, err
	}
	hasMoves, err := HasLegalMoves(board, colour)
	if err != nil {
		return chess.Ongoing, err
	}

	switch {
	case !hasMoves && inCheck:
		return chess.Checkmate, nil
	case !hasMoves:
		return chess.Stalemate, nil
	case inCheck:
		return chess.Check, nil
	default:
		return chess.Ongoing, nil
	}
}
