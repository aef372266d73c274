// Package output renders session snapshots for terminals and machine consumers.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/session"
)

const separator = "   +---+---+---+---+---+---+---+---+"

// RenderBoard draws the position as a bordered grid, rank 8 at the top,
// with rank and file labels. White pieces are uppercase.
func RenderBoard(w io.Writer, squares [chess.BoardSize][chess.BoardSize]chess.Piece) error {
	var sb strings.Builder
	sb.WriteString("\n" + separator + "\n")
	for row := 0; row < chess.BoardSize; row++ {
		fmt.Fprintf(&sb, " %d ", chess.BoardSize-row)
		for col := 0; col < chess.BoardSize; col++ {
			p := squares[row][col]
			if p.IsEmpty() {
				sb.WriteString("|   ")
				continue
			}
			fmt.Fprintf(&sb, "| %c ", p.Letter())
		}
		sb.WriteString("|\n" + separator + "\n")
	}
	sb.WriteString("    ")
	for col := 0; col < chess.BoardSize; col++ {
		fmt.Fprintf(&sb, " %c  ", 'a'+col)
	}
	sb.WriteString("\n\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// BoardText is the compact board used in prompts: one line per rank, "."
// for empty squares, each cell padded to three columns.
func BoardText(squares [chess.BoardSize][chess.BoardSize]chess.Piece) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		fmt.Fprintf(&sb, "%d ", chess.BoardSize-row)
		for col := 0; col < chess.BoardSize; col++ {
			fmt.Fprintf(&sb, "%-3c", squares[row][col].Letter())
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for col := 0; col < chess.BoardSize; col++ {
		fmt.Fprintf(&sb, "%-3c", 'a'+col)
	}
	sb.WriteString("\n")
	return sb.String()
}

// CheckBanner announces that the side to move is in check. It is empty
// when the snapshot is not a check.
func CheckBanner(snap session.Snapshot) string {
	if snap.Result != chess.Check {
		return ""
	}
	return fmt.Sprintf("!!! %s King is in check !!!", snap.ToMove)
}

// GameOverBanner describes a finished session.
func GameOverBanner(state session.State) string {
	if winner, ok := state.Winner(); ok {
		return fmt.Sprintf("CHECKMATE! %s wins!", winner)
	}
	if state == session.Stalemate {
		return "STALEMATE! It's a draw!"
	}
	return "Game abandoned."
}

// CaptureLine reports a capture, or returns "" for a quiet move.
func CaptureLine(rec session.MoveRecord) string {
	if rec.Captured.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("Captured: %s at %s", rec.Captured, rec.Move.To)
}
