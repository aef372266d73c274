package agent

import (
	"context"
	"math/rand"
	"sync"
	"time"

	chesslib "github.com/corentings/chess/v2"
	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/session"
)

// Library plays a random move generated by corentings/chess. It needs no
// network or external process.
type Library struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.Logger
}

// NewLibrary creates a library opponent. A zero seed is replaced by the clock.
func NewLibrary(seed int64, logger *zap.Logger) *Library {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger = logging.OrNop(logger)
	return &Library{rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// Name identifies the opponent.
func (l *Library) Name() string {
	return "Library"
}

// NextMove picks among the library's valid moves, skipping castling, en
// passant, promotion and anything already rejected this turn.
func (l *Library) NextMove(_ context.Context, turn session.Turn) (chess.Move, error) {
	candidates, err := libraryMoves(turn)
	if err != nil {
		return chess.Move{}, err
	}
	if len(candidates) == 0 {
		return chess.Move{}, errors.ErrNoSuggestion
	}

	l.mu.Lock()
	move := candidates[l.rng.Intn(len(candidates))]
	l.mu.Unlock()

	l.logger.Debug("library move", zap.Stringer("move", move), zap.Int("candidates", len(candidates)))
	return move, nil
}

// Chat replies with a fixed line; the library opponent has no conversation.
func (l *Library) Chat(_ context.Context, _ session.Snapshot, _ string) (string, error) {
	return "I only speak in moves.", nil
}

func libraryMoves(turn session.Turn) ([]chess.Move, error) {
	opt, err := chesslib.FEN(turn.Snapshot.FEN)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "library: %v", err)
	}
	game := chesslib.NewGame(opt)

	valid := game.ValidMoves()
	var moves []chess.Move
	for i := range valid {
		m := &valid[i]
		if m.HasTag(chesslib.KingSideCastle) || m.HasTag(chesslib.QueenSideCastle) ||
			m.HasTag(chesslib.EnPassant) || m.Promo() != chesslib.NoPieceType {
			continue
		}
		move, err := chess.ParseMove(chesslib.UCINotation{}.Encode(nil, m))
		if err != nil {
			continue
		}
		if turn.Rejected(move) {
			continue
		}
		moves = append(moves, move)
	}
	return moves, nil
}
