package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
)

// Between returns the squares strictly between from and to, walking from
// the source. from and to must share a row, column or diagonal; otherwise
// the result is nil.
func Between(from, to chess.Square) []chess.Square {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if !isDiagonal(rowDiff, colDiff) && !isStraight(rowDiff, colDiff) {
		return nil
	}

	rowDir := sign(rowDiff)
	colDir := sign(colDiff)

	var squares []chess.Square
	sq := chess.Square{Row: from.Row + rowDir, Col: from.Col + colDir}
	for sq != to {
		squares = append(squares, sq)
		sq = chess.Square{Row: sq.Row + rowDir, Col: sq.Col + colDir}
	}
	return squares
}

// checkPath reports the first occupied square strictly between the move's
// endpoints as ErrPathBlocked.
func checkPath(board *chess.Board, move chess.Move) error {
	for _, sq := range Between(move.From, move.To) {
		if p := board.Get(sq); !p.IsEmpty() {
			return errors.Wrapf(errors.ErrPathBlocked, "%s blocked by %s on %s", move, p, sq)
		}
	}
	return nil
}
