// Package chess provides core chess types and operations.
package chess

import "strings"

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour converts "white"/"black" (or "w"/"b") to a Colour.
func ParseColour(s string) (Colour, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return White, false
}

// PieceType represents the kind of a chess piece.
type PieceType int

const (
	NoPieceType PieceType = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{'.', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Type   PieceType
	Colour Colour
}

// Empty marks a square with no piece on it.
var Empty = Piece{}

// W creates a white piece.
func W(t PieceType) Piece {
	return Piece{Type: t, Colour: White}
}

// B creates a black piece.
func B(t PieceType) Piece {
	return Piece{Type: t, Colour: Black}
}

// IsEmpty reports whether p is the empty marker.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black, '.' when empty.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	l := p.Type.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight", or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// PieceFromLetter is the inverse of Piece.Letter for the six piece letters.
func PieceFromLetter(l byte) (Piece, bool) {
	colour := White
	if l >= 'a' && l <= 'z' {
		colour = Black
		l -= 'a' - 'A'
	}
	for t := Pawn; t <= King; t++ {
		if t.Letter() == l {
			return Piece{Type: t, Colour: colour}, true
		}
	}
	return Empty, false
}

// GameResult classifies a position for the side to move.
type GameResult int

const (
	Ongoing GameResult = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a game result.
func (r GameResult) String() string {
	switch r {
	case Ongoing:
		return "Ongoing"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	}
	return "Unknown"
}

// IsTerminal reports whether no further moves can be played.
func (r GameResult) IsTerminal() bool {
	return r == Checkmate || r == Stalemate
}

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// PawnDirection returns the row delta of a pawn advance: -1 for White
// (towards row 0, rank 8), +1 for Black.
func PawnDirection(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row on which colour's pawns begin.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}
