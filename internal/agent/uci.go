package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/engine"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/session"
)

// handshakeTimeout bounds the wait for uciok and readyok.
const handshakeTimeout = 10 * time.Second

// UCI drives an external engine process over the UCI protocol.
type UCI struct {
	path     string
	moveTime time.Duration
	name     string

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	responses chan string
	mu        sync.Mutex
	logger    *zap.Logger

	// pending is set when a stopped search never reported its bestmove.
	pending bool
}

// StartUCI launches the engine at cfg.EnginePath and completes the handshake.
func StartUCI(ctx context.Context, cfg *config.AgentConfig, logger *zap.Logger) (*UCI, error) {
	logger = logging.OrNop(logger)
	cmd := exec.Command(cfg.EnginePath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "create stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "create stdout pipe")
	}

	u := &UCI{
		path:      cfg.EnginePath,
		moveTime:  cfg.MoveTime,
		name:      cfg.EnginePath,
		cmd:       cmd,
		stdin:     stdin,
		responses: make(chan string, 100),
		logger:    logger,
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start engine %s", cfg.EnginePath)
	}
	go u.readOutput(stdout)

	if err := u.initialize(ctx); err != nil {
		return nil, multierror.Append(err, u.Close())
	}
	return u, nil
}

func (u *UCI) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, handshakeTimeout)
	defer cancel()

	if err := u.send("uci"); err != nil {
		return err
	}
	if _, err := u.waitFor(ctx, func(line string) bool {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			u.name = name
		}
		return line == "uciok"
	}); err != nil {
		return errors.Wrap(err, "uci handshake")
	}
	return errors.Wrap(u.ready(ctx), "uci handshake")
}

// ready sends isready and discards output up to readyok.
func (u *UCI) ready(ctx context.Context) error {
	if err := u.send("isready"); err != nil {
		return err
	}
	_, err := u.waitFor(ctx, func(line string) bool { return line == "readyok" })
	return err
}

// Name returns the engine's reported name.
func (u *UCI) Name() string {
	return u.name
}

// NextMove searches the snapshot position. The search is restricted to legal
// moves that were not already rejected this turn.
func (u *UCI) NextMove(ctx context.Context, turn session.Turn) (chess.Move, error) {
	candidates, err := engine.LegalMoves(turn.Snapshot.Board(), turn.Colour)
	if err != nil {
		return chess.Move{}, err
	}
	var search []string
	for _, m := range candidates {
		if !turn.Rejected(m) {
			search = append(search, m.String())
		}
	}
	if len(search) == 0 {
		return chess.Move{}, chesserrors.ErrNoSuggestion
	}

	if u.pending {
		syncCtx, cancel := context.WithTimeout(ctx, handshakeTimeout)
		err := u.ready(syncCtx)
		cancel()
		if err != nil {
			return chess.Move{}, errors.Wrap(err, "resync engine")
		}
		u.pending = false
	}

	if err := u.send("position fen " + turn.Snapshot.FEN); err != nil {
		return chess.Move{}, err
	}
	goCmd := fmt.Sprintf("go movetime %d", u.moveTime.Milliseconds())
	if len(search) < len(candidates) {
		goCmd += " searchmoves " + strings.Join(search, " ")
	}
	if err := u.send(goCmd); err != nil {
		return chess.Move{}, err
	}

	wait, cancel := context.WithTimeout(ctx, u.moveTime+handshakeTimeout)
	defer cancel()
	line, err := u.waitFor(wait, isBestMove)
	if err != nil {
		u.abortSearch()
		return chess.Move{}, errors.Wrap(err, "wait for bestmove")
	}
	return parseBestMove(line)
}

func isBestMove(line string) bool {
	return strings.HasPrefix(line, "bestmove")
}

// abortSearch stops the running search and consumes the bestmove it still
// owes, so the next turn does not read it as the answer for a new position.
func (u *UCI) abortSearch() {
	if err := u.send("stop"); err != nil {
		u.logger.Warn("cannot stop search", zap.Error(err))
		u.pending = true
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	defer cancel()
	if _, err := u.waitFor(ctx, isBestMove); err != nil {
		u.logger.Warn("engine did not answer stop", zap.Error(err))
		u.pending = true
	}
}

// parseBestMove reads "bestmove e2e4 [ponder ...]". A promotion suffix is
// dropped since promotion is not modelled.
func parseBestMove(line string) (chess.Move, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "(none)" || fields[1] == "0000" {
		return chess.Move{}, errors.Wrapf(chesserrors.ErrNoSuggestion, "engine answered %q", line)
	}
	move := fields[1]
	if len(move) > 4 {
		move = move[:4]
	}
	return chess.ParseMove(move)
}

// Close asks the engine to quit and waits for it to exit.
func (u *UCI) Close() error {
	var result error
	if err := u.send("quit"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := u.stdin.Close(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "close engine stdin"))
	}

	done := make(chan error, 1)
	go func() { done <- u.cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			result = multierror.Append(result, errors.Wrap(err, "engine exit"))
		}
	case <-time.After(2 * time.Second):
		if err := u.cmd.Process.Kill(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "kill engine"))
		}
		<-done
	}
	return result
}

func (u *UCI) send(command string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.logger.Debug("uci send", zap.String("command", command))
	if _, err := fmt.Fprintln(u.stdin, command); err != nil {
		return errors.Wrapf(err, "send %q", command)
	}
	return nil
}

// waitFor consumes engine output until match returns true.
func (u *UCI) waitFor(ctx context.Context, match func(string) bool) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-u.responses:
			if !ok {
				return "", errors.New("engine closed its output")
			}
			if match(line) {
				return line, nil
			}
		}
	}
}

func (u *UCI) readOutput(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		u.logger.Debug("uci recv", zap.String("line", line))
		u.responses <- line
	}
	close(u.responses)
}
