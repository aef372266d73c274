package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/engine"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/session"
)

// Human reads moves from a terminal. Lines that are not moves are sent to
// the opponent as chat; "quit" ends the session.
type Human struct {
	name     string
	out      io.Writer
	opponent Chatter
	hints    bool

	in    io.Reader
	once  sync.Once
	lines chan string
	err   error
}

// HumanOption configures a Human.
type HumanOption func(*Human)

// WithChatter sends non-move lines to c.
func WithChatter(c Chatter) HumanOption {
	return func(h *Human) {
		h.opponent = c
	}
}

// WithLegalMoveHints lists the legal moves before each prompt.
func WithLegalMoveHints(enabled bool) HumanOption {
	return func(h *Human) {
		h.hints = enabled
	}
}

// NewHuman creates a terminal player reading from in and writing to out.
func NewHuman(name string, in io.Reader, out io.Writer, opts ...HumanOption) *Human {
	if out == nil {
		out = io.Discard
	}
	h := &Human{name: name, in: in, out: out}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetChatter sets the opponent that receives chat lines.
func (h *Human) SetChatter(c Chatter) {
	h.opponent = c
}

// Name returns the player's name.
func (h *Human) Name() string {
	return h.name
}

// Interactive reports that a human is asked again after every rejection.
func (h *Human) Interactive() bool {
	return true
}

// NextMove prompts until a line parses as a move.
func (h *Human) NextMove(ctx context.Context, turn session.Turn) (chess.Move, error) {
	if n := len(turn.Rejections); n > 0 {
		fmt.Fprintf(h.out, "Invalid move: %s. Try again.\n", describeRejection(turn.Rejections[n-1]))
	}
	if h.hints && turn.Attempt == 1 {
		h.printHints(turn)
	}

	for {
		fmt.Fprint(h.out, "Enter move or chat message: ")
		line, err := h.readLine(ctx)
		if err != nil {
			return chess.Move{}, err
		}

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "quit"):
			fmt.Fprintln(h.out, "Exiting game. Goodbye!")
			return chess.Move{}, errors.ErrQuit
		case chess.LooksLikeMove(line):
			return chess.ParseMove(line)
		}

		h.chat(ctx, turn.Snapshot, line)
	}
}

func (h *Human) chat(ctx context.Context, snap session.Snapshot, message string) {
	if h.opponent == nil {
		fmt.Fprintln(h.out, "That is not a move. Enter moves like 'e2e4' or 'e2 e4'.")
		return
	}
	fmt.Fprintln(h.out, "Sending chat message...")
	reply, err := h.opponent.Chat(ctx, snap, message)
	if err != nil {
		fmt.Fprintf(h.out, "Chat failed: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Opponent says: %s\n", strings.TrimSpace(reply))
}

func (h *Human) printHints(turn session.Turn) {
	moves, err := engine.LegalMoves(turn.Snapshot.Board(), turn.Colour)
	if err != nil || len(moves) == 0 {
		return
	}
	text := make([]string, len(moves))
	for i, m := range moves {
		text[i] = m.String()
	}
	fmt.Fprintf(h.out, "Legal moves: %s\n", strings.Join(text, " "))
}

// readLine waits for the next input line or for ctx to end. End of input
// counts as quitting.
func (h *Human) readLine(ctx context.Context) (string, error) {
	h.once.Do(h.startReader)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-h.lines:
		if !ok {
			if h.err != nil {
				return "", errors.Wrap(h.err, "read input")
			}
			return "", errors.ErrQuit
		}
		return strings.TrimSpace(line), nil
	}
}

func (h *Human) startReader() {
	h.lines = make(chan string)
	if h.in == nil {
		close(h.lines)
		return
	}
	go func() {
		defer close(h.lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			h.lines <- scanner.Text()
		}
		h.err = scanner.Err()
	}()
}
