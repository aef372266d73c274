package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/clichess-go/internal/config"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/session"
)

// fakeEngine answers bestmove with the first searchmoves entry, or e7e5.
const fakeEngine = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    uci) echo "id name FakeFish"; echo "uciok" ;;
    isready) echo "readyok" ;;
    "go "*searchmoves*) set -- ${line#*searchmoves }; echo "info depth 1 score cp 10"; echo "bestmove $1" ;;
    "go "*) echo "info depth 1 score cp 10"; echo "bestmove e7e5 ponder g1f3" ;;
    quit) exit 0 ;;
  esac
done
`

// silentEngine never completes the handshake.
const silentEngine = `#!/bin/sh
while IFS= read -r line; do :; done
`

// slowEngine ignores its first search until told to stop, then reports
// a7a6. Later searches answer e7e5 at once.
const slowEngine = `#!/bin/sh
first=1
while IFS= read -r line; do
  case "$line" in
    uci) echo "uciok" ;;
    isready) echo "readyok" ;;
    stop) echo "bestmove a7a6" ;;
    "go "*) if [ "$first" = 1 ]; then first=0; else echo "bestmove e7e5"; fi ;;
    quit) exit 0 ;;
  esac
done
`

func writeEngine(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engines need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func uciConfig(path string) *config.AgentConfig {
	cfg := config.NewAgentConfig()
	cfg.Kind = config.AgentUCI
	cfg.EnginePath = path
	cfg.MoveTime = 50 * time.Millisecond
	return cfg
}

func TestUCINextMove(t *testing.T) {
	u, err := StartUCI(context.Background(), uciConfig(writeEngine(t, fakeEngine)), nil)
	require.NoError(t, err)
	assert.Equal(t, "FakeFish", u.Name())

	move, err := u.NextMove(context.Background(), blackTurn(t))
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move.String())

	turn := blackTurn(t)
	turn.Attempt = 2
	turn.Rejections = []session.Rejection{{Move: "e7e5", Reason: "PathBlocked"}}
	move, err = u.NextMove(context.Background(), turn)
	require.NoError(t, err)
	assert.Equal(t, "b8a6", move.String(), "search restricted to unrejected legal moves")

	assert.NoError(t, u.Close())
}

func TestUCITimedOutSearchDoesNotLeak(t *testing.T) {
	u, err := StartUCI(context.Background(), uciConfig(writeEngine(t, slowEngine)), nil)
	require.NoError(t, err)
	defer u.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = u.NextMove(ctx, blackTurn(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "error = %v", err)

	move, err := u.NextMove(context.Background(), blackTurn(t))
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move.String(), "answer for the stopped search must not be reused")
}

func TestUCIHandshakeTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := StartUCI(ctx, uciConfig(writeEngine(t, silentEngine)), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "error = %v", err)
}

func TestUCIMissingBinary(t *testing.T) {
	_, err := StartUCI(context.Background(), uciConfig(filepath.Join(t.TempDir(), "no-such-engine")), nil)
	assert.Error(t, err)
}

func TestParseBestMove(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"bestmove e2e4", "e2e4", nil},
		{"bestmove g8f6 ponder d2d4", "g8f6", nil},
		{"bestmove a7a8q", "a7a8", nil},
		{"bestmove (none)", "", chesserrors.ErrNoSuggestion},
		{"bestmove 0000", "", chesserrors.ErrNoSuggestion},
		{"bestmove", "", chesserrors.ErrNoSuggestion},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseBestMove(tt.line)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
