package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/session"
)

// fakeGemini answers generateContent calls with reply and records prompts.
type fakeGemini struct {
	mu      sync.Mutex
	reply   string
	status  int
	prompts []string
	keys    []string
	paths   []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, r.Header.Get("x-goog-api-key"))
	f.paths = append(f.paths, r.URL.Path)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, req.Contents[0].Parts[0].Text)
	}

	if f.status != 0 && f.status != http.StatusOK {
		http.Error(w, "quota exceeded", f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []interface{}{map[string]string{"text": f.reply}},
				},
			},
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeGemini) recorded() (prompts, keys, paths []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts, f.keys, f.paths
}

func newTestGemini(t *testing.T, fake *fakeGemini, transcript io.Writer) *Gemini {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.NewAgentConfig()
	cfg.Kind = config.AgentGemini
	cfg.APIKey = "test-key"
	cfg.Model = "test-model"
	cfg.Endpoint = srv.URL + "/v1beta/"
	cfg.Timeout = 5 * time.Second
	return NewGemini(cfg, nil, WithTranscript(transcript))
}

func blackTurn(t *testing.T) session.Turn {
	t.Helper()
	s := session.New(nil, nil)
	_, err := s.Submit(chess.MustMove("e2e4"))
	require.NoError(t, err)
	return session.Turn{Snapshot: s.Snapshot(), Colour: chess.Black, Attempt: 1}
}

func TestGeminiNextMove(t *testing.T) {
	fake := &fakeGemini{reply: "Mirror the centre.\nMove: e7e5"}
	var transcript strings.Builder
	g := newTestGemini(t, fake, &transcript)

	move, err := g.NextMove(context.Background(), blackTurn(t))
	require.NoError(t, err)
	assert.Equal(t, "e7e5", move.String())

	prompts, keys, paths := fake.recorded()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "playing black")
	assert.Equal(t, []string{"test-key"}, keys)
	assert.Equal(t, []string{"/v1beta/models/test-model:generateContent"}, paths)
	assert.Contains(t, transcript.String(), "AI says: Mirror the centre.")
	assert.Equal(t, "Gemini test-model", g.Name())
}

func TestGeminiRetryPromptListsRejections(t *testing.T) {
	fake := &fakeGemini{reply: "Move: d7d5"}
	g := newTestGemini(t, fake, nil)

	turn := blackTurn(t)
	turn.Attempt = 2
	turn.Rejections = []session.Rejection{{Colour: chess.Black, Attempt: 1, Move: "e7e4", Reason: "GeometryInvalid"}}

	_, err := g.NextMove(context.Background(), turn)
	require.NoError(t, err)
	prompts, _, _ := fake.recorded()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Do not suggest e7e4 again")
}

func TestGeminiReplyWithoutMove(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{reply: "I resign, this is too hard."}, nil)

	_, err := g.NextMove(context.Background(), blackTurn(t))
	assert.True(t, errors.Is(err, chesserrors.ErrNoSuggestion), "error = %v", err)
}

func TestGeminiHTTPError(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{status: http.StatusTooManyRequests}, nil)

	_, err := g.NextMove(context.Background(), blackTurn(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiEmptyReply(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{reply: "   "}, nil)

	_, err := g.Chat(context.Background(), blackTurn(t).Snapshot, "hi")
	assert.True(t, errors.Is(err, chesserrors.ErrNoSuggestion), "error = %v", err)
}

func TestGeminiChat(t *testing.T) {
	fake := &fakeGemini{reply: "Relax, it's just a game."}
	g := newTestGemini(t, fake, nil)

	reply, err := g.Chat(context.Background(), blackTurn(t).Snapshot, "are you nervous?")
	require.NoError(t, err)
	assert.Equal(t, "Relax, it's just a game.", reply)
	prompts, _, _ := fake.recorded()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `"are you nervous?"`)
}

func TestGeminiContextCancelled(t *testing.T) {
	g := newTestGemini(t, &fakeGemini{reply: "Move: e7e5"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.NextMove(ctx, blackTurn(t))
	assert.True(t, errors.Is(err, context.Canceled), "error = %v", err)
}
