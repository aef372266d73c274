package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/output"
	"github.com/lgbarn/clichess-go/internal/session"
)

// moveLineRe finds the answer line, e.g. "Move: e7e5" or "move: e7 e5".
var moveLineRe = regexp.MustCompile(`(?im)^[\s*_]*Move:[\s*_]*([a-h][1-8])\s?([a-h][1-8])[\s*_.]*$`)

// ExtractMove pulls the move out of a free-text reply. It returns
// ErrNoSuggestion when no "Move:" line is present.
func ExtractMove(reply string) (chess.Move, error) {
	m := moveLineRe.FindStringSubmatch(reply)
	if m == nil {
		return chess.Move{}, errors.Wrapf(errors.ErrNoSuggestion, "no 'Move:' line in reply %q", truncate(reply, 200))
	}
	return chess.ParseMove(m[1] + m[2])
}

// MovePrompt asks for one move for the side in turn. On retries it lists every
// rejected suggestion so it is not repeated.
func MovePrompt(turn session.Turn) string {
	side := colourName(turn.Colour)
	other := colourName(turn.Colour.Opposite())
	kingLetter := "K"
	letters := "P, R, N, B, Q, K"
	if turn.Colour == chess.Black {
		kingLetter = "k"
		letters = "p, r, n, b, q, k"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a chess AI playing %s (%s). Your opponent plays %s.\n", side, letters, other)
	fmt.Fprintf(&sb, "Uppercase letters are White, lowercase letters are Black, '.' is an empty square.\n")

	if len(turn.Rejections) > 0 {
		sb.WriteString("ATTENTION: your previous suggestions were INVALID.\n")
		for _, r := range turn.Rejections {
			if r.Move != "" {
				fmt.Fprintf(&sb, "- Do not suggest %s again (%s).\n", r.Move, r.Reason)
			} else {
				fmt.Fprintf(&sb, "- An earlier reply contained no usable move (%s).\n", r.Reason)
			}
		}
		fmt.Fprintf(&sb, "Choose a DIFFERENT valid move that does not leave the %s king (%s) in check.\n", side, kingLetter)
	}

	fmt.Fprintf(&sb, "\nIt is %s's turn. Castling, en passant and promotion are not available.\n\n", side)
	sb.WriteString("BOARD STATE:\n--------------------------------\n")
	sb.WriteString(output.BoardText(turn.Snapshot.Squares))
	sb.WriteString("--------------------------------\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Analyze this board state only.\n")
	fmt.Fprintf(&sb, "2. Choose the best valid move for %s. A move is only valid if it does not leave your king in check.\n", side)
	sb.WriteString("3. Briefly explain your reasoning in one or two sentences.\n")
	sb.WriteString("4. Finish with your move on its own line, prefixed exactly with 'Move:', using source and destination squares.\n\n")
	sb.WriteString("Example response:\nDeveloping the knight seems like a good idea.\nMove: g8f6\n")
	return sb.String()
}

// ChatPrompt asks for a conversational reply to the human's message.
func ChatPrompt(snap session.Snapshot, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a chill chess AI. Your opponent sent you a chat message instead of a move. ")
	fmt.Fprintf(&sb, "Respond conversationally and briefly. It is currently %s's turn.\n", colourName(snap.ToMove))
	fmt.Fprintf(&sb, "Here's the message: %q\n\n", message)
	sb.WriteString("For context, the current board (Uppercase=White, lowercase=Black, .=Empty):\n")
	sb.WriteString("--------------------------------\n")
	sb.WriteString(output.BoardText(snap.Squares))
	sb.WriteString("--------------------------------\n")
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
