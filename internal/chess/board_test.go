package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for _, sq := range AllSquares() {
			if got := b.Get(sq); got != Empty {
				t.Errorf("Get(%s) = %v; want Empty", sq, got)
			}
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewInitialBoard()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		// White back rank
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white bishop f1", "f1", W(Bishop)},
		{"white knight g1", "g1", W(Knight)},
		{"white rook h1", "h1", W(Rook)},
		// White pawns
		{"white pawn a2", "a2", W(Pawn)},
		{"white pawn e2", "e2", W(Pawn)},
		{"white pawn h2", "h2", W(Pawn)},
		// Black pawns
		{"black pawn a7", "a7", B(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black pawn h7", "h7", B(Pawn)},
		// Black back rank
		{"black rook a8", "a8", B(Rook)},
		{"black knight b8", "b8", B(Knight)},
		{"black bishop c8", "c8", B(Bishop)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
		{"black rook h8", "h8", B(Rook)},
		// Middle of the board
		{"empty e4", "e4", Empty},
		{"empty d5", "d5", Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Get(MustSquare(tt.sq)); got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}

	if b.ToMove != White {
		t.Errorf("ToMove = %v; want White", b.ToMove)
	}
	if got := len(b.Pieces(White)); got != 16 {
		t.Errorf("len(Pieces(White)) = %d; want 16", got)
	}
	if got := len(b.Pieces(Black)); got != 16 {
		t.Errorf("len(Pieces(Black)) = %d; want 16", got)
	}
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewInitialBoard()
	c := b.Copy()

	c.Set(MustSquare("e2"), Empty)
	c.Set(MustSquare("e4"), W(Pawn))
	c.ToMove = Black

	if got := b.Get(MustSquare("e2")); got != W(Pawn) {
		t.Errorf("original e2 = %v after mutating copy; want White Pawn", got)
	}
	if got := b.Get(MustSquare("e4")); got != Empty {
		t.Errorf("original e4 = %v after mutating copy; want Empty", got)
	}
	if b.ToMove != White {
		t.Errorf("original ToMove = %v after mutating copy; want White", b.ToMove)
	}
}

func TestFindKing(t *testing.T) {
	b := NewInitialBoard()

	sq, ok := b.FindKing(White)
	if !ok || sq.String() != "e1" {
		t.Errorf("FindKing(White) = %v, %v; want e1, true", sq, ok)
	}
	sq, ok = b.FindKing(Black)
	if !ok || sq.String() != "e8" {
		t.Errorf("FindKing(Black) = %v, %v; want e8, true", sq, ok)
	}

	b.Set(MustSquare("e8"), Empty)
	if _, ok := b.FindKing(Black); ok {
		t.Error("FindKing(Black) found a king on a board without one")
	}
	if got := b.CountKings(White); got != 1 {
		t.Errorf("CountKings(White) = %d; want 1", got)
	}
}

func TestGetSetOffBoard(t *testing.T) {
	b := NewBoard()
	off := Square{Row: -1, Col: 3}

	b.Set(off, W(Queen))
	if got := b.Get(off); got != Empty {
		t.Errorf("Get(off-board) = %v; want Empty", got)
	}
}

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		piece Piece
		want  byte
	}{
		{W(Pawn), 'P'},
		{W(Knight), 'N'},
		{W(King), 'K'},
		{B(Queen), 'q'},
		{B(Rook), 'r'},
		{B(Bishop), 'b'},
		{Empty, '.'},
	}

	for _, tt := range tests {
		if got := tt.piece.Letter(); got != tt.want {
			t.Errorf("%v.Letter() = %c; want %c", tt.piece, got, tt.want)
		}
		if tt.piece.IsEmpty() {
			continue
		}
		back, ok := PieceFromLetter(tt.want)
		if !ok || back != tt.piece {
			t.Errorf("PieceFromLetter(%c) = %v, %v; want %v, true", tt.want, back, ok, tt.piece)
		}
	}

	if _, ok := PieceFromLetter('x'); ok {
		t.Error("PieceFromLetter('x') ok = true; want false")
	}
}

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() does not swap colours")
	}
	if c, ok := ParseColour("BLACK"); !ok || c != Black {
		t.Errorf("ParseColour(BLACK) = %v, %v; want Black, true", c, ok)
	}
	if _, ok := ParseColour("green"); ok {
		t.Error("ParseColour(green) ok = true; want false")
	}
}

func TestGameResult(t *testing.T) {
	terminal := map[GameResult]bool{
		Ongoing:   false,
		Check:     false,
		Checkmate: true,
		Stalemate: true,
	}
	for r, want := range terminal {
		if got := r.IsTerminal(); got != want {
			t.Errorf("%v.IsTerminal() = %v; want %v", r, got, want)
		}
	}
}
