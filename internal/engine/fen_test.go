package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/clichess-go/internal/chess"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
)

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr bool
		checkFn func(*chess.Board) bool
	}{
		{
			name:    "initial position",
			fen:     InitialFEN,
			wantErr: false,
			checkFn: func(b *chess.Board) bool {
				return *b == *chess.NewInitialBoard()
			},
		},
		{
			name:    "after 1.e4 with castling and en passant fields",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			wantErr: false,
			checkFn: func(b *chess.Board) bool {
				return b.Get(chess.MustSquare("e4")) == chess.W(chess.Pawn) &&
					b.Get(chess.MustSquare("e2")) == chess.Empty &&
					b.ToMove == chess.Black
			},
		},
		{
			name:    "placement only",
			fen:     "4k3/8/8/8/8/8/8/4K3",
			wantErr: false,
			checkFn: func(b *chess.Board) bool {
				return b.ToMove == chess.White &&
					b.Get(chess.MustSquare("e8")) == chess.B(chess.King)
			},
		},
		{"empty string", "", true, nil},
		{"invalid piece", "4k3/8/8/8/8/8/8/4K2X w - - 0 1", true, nil},
		{"too few ranks", "4k3/8/8/8/8/8/4K3 w - - 0 1", true, nil},
		{"rank too long", "4k3/8/8/8/8/8/8/4K4 w - - 0 1", true, nil},
		{"rank too short", "4k3/8/8/8/8/8/8/4K2 w - - 0 1", true, nil},
		{"bad side to move", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", true, nil},
		{"missing black king", "8/8/8/8/8/8/8/4K3 w - - 0 1", true, nil},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", true, nil},
		{"side not to move in check", "4k2R/8/8/8/8/8/8/4K3 w - - 0 1", true, nil},
		{"white in check with black to move", "4k3/8/8/8/8/8/8/r3K3 b - - 0 1", true, nil},
		{
			name:    "side to move in check",
			fen:     "4k2R/8/8/8/8/8/8/4K3 b - - 0 1",
			wantErr: false,
			checkFn: func(b *chess.Board) bool {
				return b.ToMove == chess.Black
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBoardFromFEN() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, chesserrors.ErrInvalidFEN) {
				t.Errorf("NewBoardFromFEN() error = %v, want ErrInvalidFEN", err)
			}
			if !tt.wantErr && tt.checkFn != nil && !tt.checkFn(board) {
				t.Errorf("NewBoardFromFEN() board check failed")
			}
		})
	}
}

func TestBoardToFEN(t *testing.T) {
	// Round trip: FEN -> Board -> FEN
	tests := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"8/8/8/8/8/8/8/k3K3 w - - 0 1",
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			board, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			if got := BoardToFEN(board); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}
