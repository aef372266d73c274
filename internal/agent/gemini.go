package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/session"
)

const maxResponseBytes = 1 << 20

// Gemini asks a Gemini model for moves and chat replies.
type Gemini struct {
	apiKey     string
	model      string
	endpoint   string
	client     *http.Client
	transcript io.Writer
	logger     *zap.Logger
}

// GeminiOption configures a Gemini opponent.
type GeminiOption func(*Gemini)

// WithTranscript echoes the model's replies to w.
func WithTranscript(w io.Writer) GeminiOption {
	return func(g *Gemini) {
		if w != nil {
			g.transcript = w
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) {
		g.client = c
	}
}

// NewGemini creates a Gemini opponent from cfg.
func NewGemini(cfg *config.AgentConfig, logger *zap.Logger, opts ...GeminiOption) *Gemini {
	logger = logging.OrNop(logger)
	g := &Gemini{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		client:     &http.Client{Timeout: cfg.Timeout},
		transcript: io.Discard,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the model name.
func (g *Gemini) Name() string {
	return "Gemini " + g.model
}

// NextMove asks the model for a move and extracts it from the "Move:" line.
func (g *Gemini) NextMove(ctx context.Context, turn session.Turn) (chess.Move, error) {
	fmt.Fprintf(g.transcript, "AI is thinking... (attempt %d)\n", turn.Attempt)
	reply, err := g.generate(ctx, MovePrompt(turn))
	if err != nil {
		return chess.Move{}, err
	}
	fmt.Fprintf(g.transcript, "AI says: %s\n", strings.TrimSpace(reply))

	move, err := ExtractMove(reply)
	if err != nil {
		g.logger.Warn("reply without a move", zap.Int("attempt", turn.Attempt), zap.Error(err))
		return chess.Move{}, err
	}
	g.logger.Debug("suggested move", zap.Stringer("move", move), zap.Int("attempt", turn.Attempt))
	return move, nil
}

// Chat answers a free-text message.
func (g *Gemini) Chat(ctx context.Context, snap session.Snapshot, message string) (string, error) {
	return g.generate(ctx, ChatPrompt(snap, message))
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// text joins the parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build gemini request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call gemini")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.Wrap(err, "read gemini response")
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("gemini request failed", zap.Int("status", resp.StatusCode))
		return "", errors.Errorf("gemini: HTTP %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", errors.Wrap(err, "decode gemini response")
	}
	text := gr.text()
	if strings.TrimSpace(text) == "" {
		return "", errors.Wrap(chesserrors.ErrNoSuggestion, "gemini returned no text")
	}
	return text, nil
}
