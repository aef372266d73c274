package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/session"
)

// JSONSnapshot represents a session snapshot in JSON format.
type JSONSnapshot struct {
	ID       string   `json:"id"`
	Board    []string `json:"board"` // eight ranks, rank 8 first, "." for empty
	ToMove   string   `json:"toMove"` // "white" or "black"
	State    string   `json:"state"`
	Result   string   `json:"result"`
	Ply      int      `json:"ply"`
	LastMove string   `json:"lastMove,omitempty"`
	FEN      string   `json:"fen"`
}

// JSONMove represents an applied move in JSON format.
type JSONMove struct {
	Ply      int    `json:"ply"`
	Color    string `json:"color"` // "white" or "black"
	UCI      string `json:"uci"`
	From     string `json:"from"`
	To       string `json:"to"`
	Captured string `json:"captured,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// SnapshotToJSON converts a snapshot to JSON format.
func SnapshotToJSON(snap session.Snapshot) *JSONSnapshot {
	js := &JSONSnapshot{
		ID:     snap.ID,
		Board:  make([]string, chess.BoardSize),
		ToMove: strings.ToLower(snap.ToMove.String()),
		State:  snap.State.String(),
		Result: snap.Result.String(),
		Ply:    snap.Ply,
		FEN:    snap.FEN,
	}
	for row := 0; row < chess.BoardSize; row++ {
		rank := make([]byte, chess.BoardSize)
		for col := 0; col < chess.BoardSize; col++ {
			rank[col] = snap.Squares[row][col].Letter()
		}
		js.Board[row] = string(rank)
	}
	if snap.LastMove != nil {
		js.LastMove = snap.LastMove.String()
	}
	return js
}

// MoveToJSON converts a move record to JSON format.
func MoveToJSON(rec session.MoveRecord) JSONMove {
	jm := JSONMove{
		Ply:      rec.Ply,
		Color:    strings.ToLower(rec.Colour.String()),
		UCI:      rec.Move.String(),
		From:     rec.Move.From.String(),
		To:       rec.Move.To.String(),
		Fallback: rec.Fallback,
	}
	if !rec.Captured.IsEmpty() {
		jm.Captured = string(rec.Captured.Letter())
	}
	return jm
}

// HistoryToJSON converts a move history to JSON format.
func HistoryToJSON(history []session.MoveRecord) []JSONMove {
	moves := make([]JSONMove, len(history))
	for i, rec := range history {
		moves[i] = MoveToJSON(rec)
	}
	return moves
}

// WriteSnapshotJSON writes one snapshot as a single JSON line.
func WriteSnapshotJSON(w io.Writer, snap session.Snapshot) error {
	return writeJSONLine(w, SnapshotToJSON(snap))
}

func writeJSONLine(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}
