// Package session holds the authoritative board for one game and drives the
// turn loop between two players.
package session

import (
	"fmt"

	"github.com/lgbarn/clichess-go/internal/chess"
)

// State is the status of a session.
type State int

const (
	WhiteToMove State = iota
	BlackToMove
	WhiteWinsByCheckmate
	BlackWinsByCheckmate
	Stalemate
)

var stateNames = map[State]string{
	WhiteToMove:          "WhiteToMove",
	BlackToMove:          "BlackToMove",
	WhiteWinsByCheckmate: "WhiteWinsByCheckmate",
	BlackWinsByCheckmate: "BlackWinsByCheckmate",
	Stalemate:            "Stalemate",
}

// String returns the name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	st, ok := ParseState(string(text))
	if !ok {
		return fmt.Errorf("unknown session state %q", text)
	}
	*s = st
	return nil
}

// ParseState looks up a state by name.
func ParseState(name string) (State, bool) {
	for st, n := range stateNames {
		if n == name {
			return st, true
		}
	}
	return 0, false
}

// IsTerminal reports whether the session has ended.
func (s State) IsTerminal() bool {
	return s == WhiteWinsByCheckmate || s == BlackWinsByCheckmate || s == Stalemate
}

// Winner returns the winning colour of a checkmate state.
func (s State) Winner() (chess.Colour, bool) {
	switch s {
	case WhiteWinsByCheckmate:
		return chess.White, true
	case BlackWinsByCheckmate:
		return chess.Black, true
	}
	return chess.White, false
}

// ToMove returns the state in which colour is to move.
func ToMove(colour chess.Colour) State {
	if colour == chess.Black {
		return BlackToMove
	}
	return WhiteToMove
}

// winsFor returns the checkmate state won by colour.
func winsFor(colour chess.Colour) State {
	if colour == chess.Black {
		return BlackWinsByCheckmate
	}
	return WhiteWinsByCheckmate
}
