package chess

// Board represents a chess board: 64 squares and whose turn it is.
// Squares is indexed [row][col] with row 0 holding rank 8.
type Board struct {
	Squares [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{ToMove: White}
}

// NewInitialBoard creates a board holding the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [BoardSize][BoardSize]Piece{}

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[0][col] = B(backRank[col])
		b.Squares[1][col] = B(Pawn)
		b.Squares[6][col] = W(Pawn)
		b.Squares[7][col] = W(backRank[col])
	}

	b.ToMove = White
}

// Get returns the piece at sq. Off-board squares read as Empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.InBounds() {
		return Empty
	}
	return b.Squares[sq.Row][sq.Col]
}

// Set places a piece at sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.InBounds() {
		b.Squares[sq.Row][sq.Col] = piece
	}
}

// Copy creates a deep copy of the board. The squares array is a value,
// so the copy shares nothing with the original.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// FindKing returns the square of colour's king.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	want := Piece{Type: King, Colour: colour}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Squares[row][col] == want {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// Pieces returns the squares holding colour's pieces in row-major order.
func (b *Board) Pieces(colour Colour) []Square {
	var squares []Square
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := b.Squares[row][col]
			if !p.IsEmpty() && p.Colour == colour {
				squares = append(squares, Square{Row: row, Col: col})
			}
		}
	}
	return squares
}

// CountKings returns how many kings of colour are on the board.
func (b *Board) CountKings(colour Colour) int {
	n := 0
	want := Piece{Type: King, Colour: colour}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Squares[row][col] == want {
				n++
			}
		}
	}
	return n
}
