package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Are verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrOutOfBounds", ErrOutOfBounds, ErrOutOfBounds},
		{"ErrEmptySource", ErrEmptySource, ErrEmptySource},
		{"ErrWrongTurn", ErrWrongTurn, ErrWrongTurn},
		{"ErrFriendlyCapture", ErrFriendlyCapture, ErrFriendlyCapture},
		{"ErrNoOpMove", ErrNoOpMove, ErrNoOpMove},
		{"ErrGeometryInvalid", ErrGeometryInvalid, ErrGeometryInvalid},
		{"ErrPathBlocked", ErrPathBlocked, ErrPathBlocked},
		{"ErrLeavesKingInCheck", ErrLeavesKingInCheck, ErrLeavesKingInCheck},
		{"ErrKingMissing", ErrKingMissing, ErrKingMissing},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies no two rejection reasons compare equal
func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{
		ErrOutOfBounds, ErrEmptySource, ErrWrongTurn, ErrFriendlyCapture, ErrNoOpMove,
		ErrGeometryInvalid, ErrPathBlocked, ErrLeavesKingInCheck, ErrKingMissing,
	}
	for i := range all {
		for j := range all {
			if i != j && errors.Is(all[i], all[j]) {
				t.Errorf("errors.Is(%v, %v) = true, want false", all[i], all[j])
			}
		}
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrPathBlocked, "PathBlocked"},
		{fmt.Errorf("rook a1a8: %w", ErrPathBlocked), "PathBlocked"},
		{&MoveError{Err: ErrLeavesKingInCheck, Move: "e1e2"}, "LeavesOwnKingInCheck"},
		{ErrNoOpMove, "NoOpMove"},
		{ErrKingMissing, "KingMissing"},
		{errors.New("something else"), "Unknown"},
	}

	for _, tt := range tests {
		if got := Reason(tt.err); got != tt.want {
			t.Errorf("Reason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrKingMissing, "classify")) {
		t.Error("IsFatal(wrapped ErrKingMissing) = false, want true")
	}
	if !IsFatal(ErrKingCapture) {
		t.Error("IsFatal(ErrKingCapture) = false, want true")
	}
	if IsFatal(ErrPathBlocked) {
		t.Error("IsFatal(ErrPathBlocked) = true, want false")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:     ErrPathBlocked,
				Move:    "a1a8",
				Colour:  "Black",
				Attempt: 2,
			},
			contains: []string{"black", "attempt 2", "a1a8", "path is blocked"},
		},
		{
			name:     "minimal context",
			err:      &MoveError{Err: ErrEmptySource},
			contains: []string{"source square is empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:     ErrWrongTurn,
		Move:    "e7e5",
		Attempt: 1,
	}

	wrapped := fmt.Errorf("submit failed: %w", moveErr)

	var extracted *MoveError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extracted.Move != "e7e5" {
		t.Errorf("extracted.Move = %q, want %q", extracted.Move, "e7e5")
	}
	if !errors.Is(wrapped, ErrWrongTurn) {
		t.Error("errors.Is(wrapped, ErrWrongTurn) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrGeometryInvalid, "knight %s", "g1g3")

	if !errors.Is(wrapped, ErrGeometryInvalid) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "knight g1g3") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
