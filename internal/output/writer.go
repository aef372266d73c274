package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/session"
)

// SnapshotWriter is the interface for presenting session progress.
// Implementations handle different formats (text, JSON lines).
type SnapshotWriter interface {
	// WriteSnapshot presents the position before a turn.
	WriteSnapshot(snap session.Snapshot) error

	// WriteMove reports a move that was just applied.
	WriteMove(rec session.MoveRecord) error

	// WriteGameOver presents the final position and result.
	WriteGameOver(snap session.Snapshot) error
}

// TextWriter draws boards and banners for a terminal.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteSnapshot draws the board followed by the turn header and any check banner.
func (tw *TextWriter) WriteSnapshot(snap session.Snapshot) error {
	if err := RenderBoard(tw.w, snap.Squares); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw.w, "--- %s to move ---\n", snap.ToMove); err != nil {
		return err
	}
	if banner := CheckBanner(snap); banner != "" {
		if _, err := fmt.Fprintln(tw.w, banner); err != nil {
			return err
		}
	}
	return nil
}

// WriteMove prints the move and any capture.
func (tw *TextWriter) WriteMove(rec session.MoveRecord) error {
	line := fmt.Sprintf("%s plays %s", rec.Colour, rec.Move)
	if rec.Fallback {
		line += " (fallback)"
	}
	if capture := CaptureLine(rec); capture != "" {
		line += ". " + capture
	}
	_, err := fmt.Fprintln(tw.w, line)
	return err
}

// WriteGameOver draws the final board and the result banner.
func (tw *TextWriter) WriteGameOver(snap session.Snapshot) error {
	if err := RenderBoard(tw.w, snap.Squares); err != nil {
		return err
	}
	_, err := fmt.Fprintf(tw.w, "\n================ GAME OVER ================\n%s\n===========================================\n",
		GameOverBanner(snap.State))
	return err
}

// JSONWriter writes one JSON object per line.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a new JSON lines writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteSnapshot writes the snapshot as JSON.
func (jw *JSONWriter) WriteSnapshot(snap session.Snapshot) error {
	return WriteSnapshotJSON(jw.w, snap)
}

// WriteMove writes the move record as JSON.
func (jw *JSONWriter) WriteMove(rec session.MoveRecord) error {
	return writeJSONLine(jw.w, MoveToJSON(rec))
}

// WriteGameOver writes the final snapshot as JSON.
func (jw *JSONWriter) WriteGameOver(snap session.Snapshot) error {
	return WriteSnapshotJSON(jw.w, snap)
}

// NewWriter returns the writer for format.
func NewWriter(format config.OutputFormat, w io.Writer) (SnapshotWriter, error) {
	switch format {
	case "", config.TextFormat:
		return NewTextWriter(w), nil
	case config.JSONFormat:
		return NewJSONWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q: %w", format, errors.ErrInvalidConfig)
}
