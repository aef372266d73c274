// Package errors provides sentinel errors and error types for the clichess tool.
// It defines the move-rejection taxonomy used by the rules engine together with
// the boundary errors raised by parsing, configuration and collaborators.
// Every error can be inspected with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Move rejection taxonomy. The rules engine returns the first applicable reason.
// All of these are recoverable: the acting side is told why and asked again.
var (
	// ErrOutOfBounds indicates a square outside the 8x8 board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrEmptySource indicates there is no piece on the source square.
	ErrEmptySource = errors.New("source square is empty")

	// ErrWrongTurn indicates the piece does not belong to the side to move.
	ErrWrongTurn = errors.New("piece does not belong to the side to move")

	// ErrFriendlyCapture indicates the destination holds a piece of the mover's colour.
	ErrFriendlyCapture = errors.New("destination occupied by own piece")

	// ErrNoOpMove indicates source and destination are the same square.
	ErrNoOpMove = errors.New("source and destination are the same square")

	// ErrGeometryInvalid indicates the piece cannot move in that shape.
	ErrGeometryInvalid = errors.New("piece cannot move that way")

	// ErrPathBlocked indicates a piece stands between source and destination.
	ErrPathBlocked = errors.New("path is blocked")

	// ErrLeavesKingInCheck indicates the move would leave the mover's king attacked.
	ErrLeavesKingInCheck = errors.New("move leaves own king in check")
)

// Fatal conditions. These indicate a corrupted board, never a game event.
var (
	// ErrKingMissing indicates a side has no king on the board.
	ErrKingMissing = errors.New("king missing from board")

	// ErrKingCapture indicates a move that would capture a king reached the executor.
	ErrKingCapture = errors.New("move captures a king")
)

// Boundary errors raised outside the rules engine.
var (
	// ErrInvalidSquare indicates malformed algebraic square notation.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMoveInput indicates text that is not two algebraic squares.
	ErrInvalidMoveInput = errors.New("not a move")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameOver indicates a move was submitted after the session ended.
	ErrGameOver = errors.New("game is over")

	// ErrNoSuggestion indicates a collaborator produced no usable move.
	ErrNoSuggestion = errors.New("no move suggested")

	// ErrRetriesExhausted indicates a collaborator used up its attempts for the turn.
	ErrRetriesExhausted = errors.New("move attempts exhausted")

	// ErrQuit indicates the human asked to leave the session.
	ErrQuit = errors.New("player quit")

	// ErrGameNotFound indicates an archived game does not exist.
	ErrGameNotFound = errors.New("game not found")
)

var reasons = []struct {
	err  error
	name string
}{
	{ErrOutOfBounds, "OutOfBounds"},
	{ErrEmptySource, "EmptySource"},
	{ErrWrongTurn, "WrongTurn"},
	{ErrFriendlyCapture, "FriendlyCapture"},
	{ErrNoOpMove, "NoOpMove"},
	{ErrGeometryInvalid, "GeometryInvalid"},
	{ErrPathBlocked, "PathBlocked"},
	{ErrLeavesKingInCheck, "LeavesOwnKingInCheck"},
	{ErrKingMissing, "KingMissing"},
	{ErrKingCapture, "KingCapture"},
	{ErrInvalidMoveInput, "InvalidMoveInput"},
	{ErrInvalidSquare, "InvalidSquare"},
	{ErrNoSuggestion, "NoSuggestion"},
}

// Reason returns the taxonomy name of err (for example "PathBlocked"),
// or "Unknown" when err wraps none of the known sentinels.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "Unknown"
}

// IsFatal reports whether err signals a corrupted board rather than a rejected move.
func IsFatal(err error) bool {
	return errors.Is(err, ErrKingMissing) || errors.Is(err, ErrKingCapture)
}

// MoveError wraps a rejection with the move context that produced it.
// It implements the error interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err     error  // The underlying error
	Move    string // Move text in coordinate form (e.g. "e2e4")
	Colour  string // Side that attempted the move (if known)
	Attempt int    // 1-based attempt number within the turn (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Colour != "" {
		parts = append(parts, strings.ToLower(e.Colour))
	}
	if e.Attempt > 0 {
		parts = append(parts, fmt.Sprintf("attempt %d", e.Attempt))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
