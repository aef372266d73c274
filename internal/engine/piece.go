package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// checkGeometry applies the movement rule of piece's type. Bounds,
// ownership and friendly capture have already been checked.
func checkGeometry(board *chess.Board, piece chess.Piece, move chess.Move) error {
	rowDiff := move.To.Row - move.From.Row
	colDiff := move.To.Col - move.From.Col

	switch piece.Type {
	case chess.Pawn:
		return checkPawn(board, piece.Colour, move, rowDiff, colDiff)

	case chess.Knight:
		if (abs(rowDiff) == 2 && abs(colDiff) == 1) || (abs(rowDiff) == 1 && abs(colDiff) == 2) {
			return nil
		}

	case chess.Bishop:
		if isDiagonal(rowDiff, colDiff) {
			return checkPath(board, move)
		}

	case chess.Rook:
		if isStraight(rowDiff, colDiff) {
			return checkPath(board, move)
		}

	case chess.Queen:
		if isDiagonal(rowDiff, colDiff) || isStraight(rowDiff, colDiff) {
			return checkPath(board, move)
		}

	case chess.King:
		if max(abs(rowDiff), abs(colDiff)) == 1 {
			return nil
		}
	}

	return errors.Wrapf(errors.ErrGeometryInvalid, "%s %s", piece.Type, move)
}

// checkPawn handles single and double advances and diagonal captures.
func checkPawn(board *chess.Board, colour chess.Colour, move chess.Move, rowDiff, colDiff int) error {
	dir := chess.PawnDirection(colour)
	target := board.Get(move.To)

	switch {
	case colDiff == 0 && rowDiff == dir:
		if target.IsEmpty() {
			return nil
		}

	case colDiff == 0 && rowDiff == 2*dir && move.From.Row == chess.PawnStartRow(colour):
		middle := chess.Square{Row: move.From.Row + dir, Col: move.From.Col}
		if !board.Get(middle).IsEmpty() {
			return errors.Wrapf(errors.ErrPathBlocked, "pawn %s blocked on %s", move, middle)
		}
		if target.IsEmpty() {
			return nil
		}

	case abs(colDiff) == 1 && rowDiff == dir:
		// Friendly pieces were rejected earlier, so any occupant is an enemy.
		if !target.IsEmpty() {
			return nil
		}
	}

	return errors.Wrapf(errors.ErrGeometryInvalid, "pawn %s", move)
}

func isDiagonal(rowDiff, colDiff int) bool {
	return rowDiff != 0 && abs(rowDiff) == abs(colDiff)
}

// isStraight is true when exactly one of the deltas is nonzero.
func isStraight(rowDiff, colDiff int) bool {
	return (rowDiff == 0) != (colDiff == 0)
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
