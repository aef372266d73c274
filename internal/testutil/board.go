package testutil

import (
	"testing"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/engine"
)

// Positions used across package tests.
const (
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3"
	StalemateFEN = "k7/8/8/8/8/8/2q5/K7 w - - 0 1"
	// White to play Qh5xf7 mate.
	ScholarsMateInOneFEN = "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w - - 4 4"
)

// MustBoard parses fen and calls t.Fatal on failure.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error: %v", fen, err)
	}
	return board
}

// MustMove parses coordinate move text and calls t.Fatal on failure.
func MustMove(t *testing.T, s string) chess.Move {
	t.Helper()
	move, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return move
}

// AssertFEN fails unless board serialises to want.
func AssertFEN(t *testing.T, board *chess.Board, want string, msgAndArgs ...interface{}) {
	t.Helper()
	AssertEqual(t, engine.BoardToFEN(board), want, msgAndArgs...)
}
