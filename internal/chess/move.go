package chess

import (
	"regexp"

	"github.com/lgbarn/clichess-go/internal/errors"
)

// Move is an ordered pair of squares. There is no promotion, castling or
// en passant metadata.
type Move struct {
	From Square
	To   Square
}

// String returns the coordinate form, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// moveRe matches two algebraic squares with optional whitespace between them.
var moveRe = regexp.MustCompile(`(?i)^\s*([a-h][1-8])\s*([a-h][1-8])\s*$`)

// ParseMove parses "e2e4", "E2 E4" and similar. Anything else wraps ErrInvalidMoveInput.
func ParseMove(s string) (Move, error) {
	m := moveRe.FindStringSubmatch(s)
	if m == nil {
		return Move{}, errors.Wrapf(errors.ErrInvalidMoveInput, "%q", s)
	}
	from, err := ParseSquare(m[1])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(m[2])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// MustMove is ParseMove for constant inputs; it panics on error.
func MustMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic("chess.MustMove: " + err.Error())
	}
	return m
}

// LooksLikeMove reports whether s has the shape of a move.
func LooksLikeMove(s string) bool {
	return moveRe.MatchString(s)
}
