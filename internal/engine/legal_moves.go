package engine

import (
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/worker"
)

// LegalMoves returns every legal move for colour: moves that pass
// ValidateMove and do not leave colour's own king attacked. Moves are in
// generation order, source squares row-major from a8, then destinations
// in the same order. The board is never modified.
func LegalMoves(board *chess.Board, colour chess.Colour) ([]chess.Move, error) {
	if _, err := IsInCheck(board, colour); err != nil {
		return nil, err
	}

	var moves []chess.Move
	for _, from := range board.Pieces(colour) {
		found, err := legalMovesFrom(board, from, colour)
		if err != nil {
			return nil, err
		}
		moves = append(moves, found...)
	}
	return moves, nil
}

// LegalMovesConcurrent is LegalMoves with source squares spread across a
// worker pool. Each work item carries its own copy of the board. The result
// order matches LegalMoves.
func LegalMovesConcurrent(board *chess.Board, colour chess.Colour, workers int) ([]chess.Move, error) {
	if workers <= 1 {
		return LegalMoves(board, colour)
	}
	if _, err := IsInCheck(board, colour); err != nil {
		return nil, err
	}

	sources := board.Pieces(colour)
	items := make([]worker.WorkItem, len(sources))
	for i, from := range sources {
		items[i] = worker.WorkItem{Board: board.Copy(), From: from, Index: i}
	}

	results, err := worker.Run(items, func(item worker.WorkItem) worker.ProcessResult {
		moves, err := legalMovesFrom(item.Board, item.From, colour)
		return worker.ProcessResult{Index: item.Index, From: item.From, Moves: moves, Error: err}
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(items)+1))
	if err != nil {
		return nil, err
	}

	var moves []chess.Move
	for _, r := range results {
		moves = append(moves, r.Moves...)
	}
	return moves, nil
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) (bool, error) {
	if _, err := IsInCheck(board, colour); err != nil {
		return false, err
	}
	for _, from := range board.Pieces(colour) {
		for _, to := range chess.AllSquares() {
			move := chess.Move{From: from, To: to}
			if ValidateMove(board, move, false) != nil {
				continue
			}
			safe, err := tryMove(board, move, colour)
			if err != nil {
				return false, err
			}
			if safe {
				return true, nil
			}
		}
	}
	return false, nil
}

// CheckMove runs the full pipeline for a move by the side to move:
// ValidateMove with turn enforcement, then the self-check filter.
func CheckMove(board *chess.Board, move chess.Move) error {
	if err := ValidateMove(board, move, true); err != nil {
		return err
	}
	safe, err := tryMove(board, move, board.ToMove)
	if err != nil {
		return err
	}
	if !safe {
		return errors.Wrapf(errors.ErrLeavesKingInCheck, "%s", move)
	}
	return nil
}

// legalMovesFrom returns the legal moves of the piece on from.
func legalMovesFrom(board *chess.Board, from chess.Square, colour chess.Colour) ([]chess.Move, error) {
	var moves []chess.Move
	for _, to := range chess.AllSquares() {
		move := chess.Move{From: from, To: to}
		if ValidateMove(board, move, false) != nil {
			continue
		}
		safe, err := tryMove(board, move, colour)
		if err != nil {
			return nil, err
		}
		if safe {
			moves = append(moves, move)
		}
	}
	return moves, nil
}

// tryMove makes a move on a copied board and reports whether colour's
// king is safe afterwards.
func tryMove(board *chess.Board, move chess.Move, colour chess.Colour) (bool, error) {
	testBoard := board.Copy()

	piece := testBoard.Get(move.From)
	testBoard.Set(move.From, chess.Empty)
	testBoard.Set(move.To, piece)

	inCheck, err := IsInCheck(testBoard, colour)
	if err != nil {
		return false, err
	}
	return !inCheck, nil
}
