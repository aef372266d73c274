package storage

import (
	"time"

	"github.com/lgbarn/clichess-go/internal/session"
)

// Capture is one captured piece in an archived game.
type Capture struct {
	Ply    int    `json:"ply"`
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

// GameRecord is an archived session.
type GameRecord struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	White      string        `json:"white"`
	Black      string        `json:"black"`
	Moves      []string      `json:"moves"`
	Captures   []Capture     `json:"captures,omitempty"`
	Fallbacks  int           `json:"fallbacks,omitempty"`
	State      session.State `json:"state"`
	FinalFEN   string        `json:"final_fen"`
}

// NewGameRecord captures the current state of s under the given player names.
func NewGameRecord(s *session.Session, white, black string) *GameRecord {
	snap := s.Snapshot()
	rec := &GameRecord{
		ID:         snap.ID,
		StartedAt:  s.StartedAt(),
		FinishedAt: time.Now().UTC(),
		White:      white,
		Black:      black,
		Moves:      []string{},
		State:      snap.State,
		FinalFEN:   snap.FEN,
	}
	for _, m := range s.History() {
		rec.Moves = append(rec.Moves, m.Move.String())
		if !m.Captured.IsEmpty() {
			rec.Captures = append(rec.Captures, Capture{
				Ply:    m.Ply,
				Square: m.Move.To.String(),
				Piece:  m.Captured.String(),
			})
		}
		if m.Fallback {
			rec.Fallbacks++
		}
	}
	return rec
}

// Finished reports whether the game reached checkmate or stalemate.
func (r *GameRecord) Finished() bool {
	return r.State.IsTerminal()
}
