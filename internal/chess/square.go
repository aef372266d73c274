package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/clichess-go/internal/errors"
)

// Square is a board coordinate. Row 0 is rank 8 and column 0 is file a.
type Square struct {
	Row int
	Col int
}

// InBounds reports whether the square lies on the 8x8 board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// String returns the algebraic name, e.g. "e4". Off-board squares print as "??".
func (s Square) String() string {
	if !s.InBounds() {
		return "??"
	}
	return string([]byte{byte('a' + s.Col), byte('8' - s.Row)})
}

// SquareAt builds a square from file ('a'-'h') and rank ('1'-'8') characters.
func SquareAt(file, rank byte) Square {
	return Square{Row: int('8') - int(rank), Col: int(file) - int('a')}
}

// ParseSquare converts algebraic notation (case-insensitive) to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "%q", s)
	}
	lower := strings.ToLower(s)
	file, rank := lower[0], lower[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "%q", s)
	}
	return SquareAt(file, rank), nil
}

// MustSquare is ParseSquare for constant inputs; it panics on error.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(fmt.Sprintf("chess.MustSquare(%q): %v", s, err))
	}
	return sq
}

// AllSquares returns the 64 squares in row-major order (a8 first, h1 last).
func AllSquares() []Square {
	squares := make([]Square, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			squares = append(squares, Square{Row: row, Col: col})
		}
	}
	return squares
}
