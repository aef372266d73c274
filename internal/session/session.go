package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/engine"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
)

// MoveRecord is one applied move.
type MoveRecord struct {
	Ply      int
	Colour   chess.Colour
	Move     chess.Move
	Captured chess.Piece
	// Fallback is set when the move was chosen for a player that ran out of attempts.
	Fallback bool
	At       time.Time
}

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	ID       string
	Squares  [chess.BoardSize][chess.BoardSize]chess.Piece
	ToMove   chess.Colour
	State    State
	Result   chess.GameResult
	Ply      int
	LastMove *chess.Move
	FEN      string
}

// Board returns a fresh board holding the snapshot position.
func (s Snapshot) Board() *chess.Board {
	return &chess.Board{Squares: s.Squares, ToMove: s.ToMove}
}

// Session owns the authoritative board. It is safe for concurrent readers;
// moves are applied one at a time.
type Session struct {
	mu        sync.RWMutex
	id        string
	cfg       config.SessionConfig
	board     *chess.Board
	state     State
	result    chess.GameResult
	history   []MoveRecord
	startedAt time.Time
	observers []Observer
	logger    *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithBoard starts the session from board instead of the standard position.
// The session keeps its own copy.
func WithBoard(board *chess.Board) Option {
	return func(s *Session) {
		s.board = board.Copy()
	}
}

// WithObserver registers fn for session events.
func WithObserver(fn Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// WithID fixes the session id.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session. A nil cfg uses the defaults.
func New(cfg *config.SessionConfig, logger *zap.Logger, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.NewSessionConfig()
	}
	logger = logging.OrNop(logger)

	s := &Session{
		id:        uuid.NewString(),
		cfg:       *cfg,
		board:     chess.NewInitialBoard(),
		startedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = ToMove(s.board.ToMove)
	s.logger = logger.With(zap.String("session", s.id))
	return s
}

// NewFromConfig creates a session honouring cfg.StartFEN.
func NewFromConfig(cfg *config.SessionConfig, logger *zap.Logger, opts ...Option) (*Session, error) {
	if cfg != nil && cfg.StartFEN != "" {
		board, err := engine.NewBoardFromFEN(cfg.StartFEN)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithBoard(board)}, opts...)
	}
	return New(cfg, logger, opts...), nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ToMove returns the side to move.
func (s *Session) ToMove() chess.Colour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.ToMove
}

// Advance classifies the position for the side to move and moves the session
// into a terminal state on checkmate or stalemate. ErrKingMissing aborts
// without a verdict.
func (s *Session) Advance() (State, chess.GameResult, error) {
	s.mu.Lock()
	if s.state.IsTerminal() {
		state, result := s.state, s.result
		s.mu.Unlock()
		return state, result, nil
	}

	colour := s.board.ToMove
	result, err := engine.Classify(s.board, colour)
	if err != nil {
		state := s.state
		s.mu.Unlock()
		s.logger.Error("cannot classify position", zap.Error(err), zap.Stringer("colour", colour))
		return state, chess.Ongoing, errors.Wrap(err, "classify position")
	}

	prevState, prevResult := s.state, s.result
	s.result = result
	switch result {
	case chess.Checkmate:
		s.state = winsFor(colour.Opposite())
	case chess.Stalemate:
		s.state = Stalemate
	default:
		s.state = ToMove(colour)
	}
	state := s.state
	changed := state != prevState || result != prevResult
	var snap Snapshot
	if changed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.logger.Info("state changed",
			zap.Stringer("state", state),
			zap.Stringer("result", result),
			zap.Int("ply", snap.Ply))
		s.emit(Event{Kind: EventStateChanged, Snapshot: snap})
	}
	return state, result, nil
}

// Submit validates move for the side to move and applies it. Rejections
// carry a reason from the move taxonomy and leave the board untouched.
func (s *Session) Submit(move chess.Move) (chess.Piece, error) {
	return s.submit(move, false)
}

func (s *Session) submit(move chess.Move, fallback bool) (chess.Piece, error) {
	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return chess.Empty, errors.ErrGameOver
	}

	colour := s.board.ToMove
	if err := engine.CheckMove(s.board, move); err != nil {
		s.mu.Unlock()
		if errors.IsFatal(err) {
			s.logger.Error("board invariant violated", zap.Error(err), zap.Stringer("move", move))
		}
		return chess.Empty, err
	}

	captured, err := engine.ApplyMove(s.board, move)
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("board invariant violated", zap.Error(err), zap.Stringer("move", move))
		return chess.Empty, err
	}

	record := MoveRecord{
		Ply:      len(s.history) + 1,
		Colour:   colour,
		Move:     move,
		Captured: captured,
		Fallback: fallback,
		At:       time.Now().UTC(),
	}
	s.history = append(s.history, record)
	s.state = ToMove(s.board.ToMove)
	s.result = chess.Ongoing
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("move applied",
		zap.Stringer("colour", colour),
		zap.Stringer("move", move),
		zap.Stringer("captured", captured),
		zap.Int("ply", record.Ply),
		zap.Bool("fallback", fallback))
	s.emit(Event{Kind: EventMoved, Snapshot: snap, Record: &record})
	return captured, nil
}

// LegalMoves lists the legal moves for the side to move, using the configured
// number of workers.
func (s *Session) LegalMoves() ([]chess.Move, error) {
	s.mu.RLock()
	board := s.board.Copy()
	s.mu.RUnlock()
	return engine.LegalMovesConcurrent(board, board.ToMove, s.cfg.Workers)
}

// Snapshot returns a copy of the current position and status.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:      s.id,
		Squares: s.board.Squares,
		ToMove:  s.board.ToMove,
		State:   s.state,
		Result:  s.result,
		Ply:     len(s.history),
		FEN:     engine.BoardToFEN(s.board),
	}
	if n := len(s.history); n > 0 {
		last := s.history[n-1].Move
		snap.LastMove = &last
	}
	return snap
}

// History returns a copy of the applied moves.
func (s *Session) History() []MoveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MoveRecord, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) reject(r Rejection) {
	snap := s.Snapshot()
	s.logger.Warn("move rejected",
		zap.Stringer("colour", r.Colour),
		zap.String("move", r.Move),
		zap.String("reason", r.Reason),
		zap.Int("attempt", r.Attempt))
	s.emit(Event{Kind: EventRejected, Snapshot: snap, Rejection: &r})
}

func (s *Session) emit(ev Event) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// String describes the session for logs.
func (s *Session) String() string {
	snap := s.Snapshot()
	return fmt.Sprintf("session %s: %s after %d plies", snap.ID, snap.State, snap.Ply)
}
