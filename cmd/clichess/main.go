// clichess plays chess at the terminal against a choice of opponents.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/agent"
	"github.com/lgbarn/clichess-go/internal/chess"
	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/output"
	"github.com/lgbarn/clichess-go/internal/server"
	"github.com/lgbarn/clichess-go/internal/session"
	"github.com/lgbarn/clichess-go/internal/storage"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("clichess-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "clichess-go version %s\n\n", programVersion)
	fmt.Fprintf(os.Stderr, "Usage: clichess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess at the terminal. Moves are entered in coordinate notation\n")
	fmt.Fprintf(os.Stderr, "(e2e4 or e2 e4). Any other line is sent to the opponent as chat.\n\n")
	fmt.Fprintf(os.Stderr, "The Gemini opponent reads its API key from $%s.\n\n", geminiKeyEnv)
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// run plays one game with the given configuration, reading the local
// player's input from in and writing the game to out.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (err error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i].Close(); cerr != nil {
				err = multierror.Append(err, cerr)
			}
		}
	}()

	archive, err := storage.OpenConfig(cfg.Storage)
	if err != nil {
		return err
	}
	if archive != nil {
		closers = append(closers, archive)
	}

	writer, err := output.NewWriter(cfg.Output.Format, out)
	if err != nil {
		return err
	}

	humanColour := cfg.Session.HumanColour
	hotseat := cfg.Agent.Kind == config.AgentHuman
	textOutput := cfg.Output.Format == config.TextFormat

	opts := []session.Option{
		session.WithObserver(reportEvents(writer, out, humanColour, textOutput && !hotseat)),
	}
	var srv *server.Server
	if cfg.Server.Enabled {
		var a server.Archive
		if archive != nil {
			a = archive
		}
		srv = server.New(a, logger)
		opts = append(opts, session.WithObserver(srv.Observe))
	}

	sess, err := session.NewFromConfig(cfg.Session, logger, opts...)
	if err != nil {
		return err
	}

	if srv != nil {
		srv.Attach(sess)
		closers = append(closers, serve(ctx, srv, cfg.Server.Addr, logger))
	}

	player := agent.NewHuman("Player", in, out, agent.WithLegalMoveHints(cfg.Output.ShowLegalMoves))
	var opponent session.Player = player
	if !hotseat {
		opponent, err = agent.New(ctx, cfg.Agent, agent.Deps{Logger: logger, Transcript: out})
		if err != nil {
			return err
		}
		if c, ok := opponent.(io.Closer); ok {
			closers = append(closers, c)
		}
		if c, ok := opponent.(agent.Chatter); ok {
			player.SetChatter(c)
		}
	}

	players := map[chess.Colour]session.Player{
		humanColour:            &announcer{Player: player, w: writer},
		humanColour.Opposite(): &announcer{Player: opponent, w: writer},
	}

	if textOutput {
		printWelcome(out, humanColour, opponent.Name(), hotseat)
	}

	state, runErr := session.Run(ctx, sess, players)
	if state.IsTerminal() {
		if werr := writer.WriteGameOver(sess.Snapshot()); werr != nil {
			runErr = multierror.Append(runErr, werr)
		}
	}

	if archive != nil {
		white, black := player.Name(), opponent.Name()
		if humanColour == chess.Black {
			white, black = black, white
		}
		rec := storage.NewGameRecord(sess, white, black)
		if serr := archive.SaveGame(rec); serr != nil {
			runErr = multierror.Append(runErr, serr)
		} else {
			logger.Info("game archived", zap.String("id", rec.ID), zap.Int("moves", len(rec.Moves)))
		}
	}

	if errors.Is(runErr, errors.ErrQuit) || errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// serve runs the spectator server until the returned closer is closed.
func serve(ctx context.Context, srv *server.Server, addr string, logger *zap.Logger) io.Closer {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe(ctx, addr)
		if err != nil {
			logger.Error("spectator server stopped", zap.Error(err))
		}
		done <- err
	}()
	return closerFunc(func() error {
		cancel()
		return <-done
	})
}

func printWelcome(w io.Writer, colour chess.Colour, opponent string, hotseat bool) {
	fmt.Fprintln(w, "Welcome to CLI Chess!")
	if hotseat {
		fmt.Fprintln(w, "Two players share this terminal and take turns.")
	} else {
		fmt.Fprintf(w, "You are playing %s against %s.\n", colour, opponent)
	}
	fmt.Fprintln(w, "Enter moves as source and destination squares, e.g. e2e4 or e2 e4.")
	fmt.Fprintln(w, "Anything else is sent to your opponent as a chat message.")
	fmt.Fprintln(w, "Type 'quit' to leave the game.")
	fmt.Fprintln(w)
}

// reportEvents prints applied moves and, when showRejections is set, the
// opponent's rejected suggestions. The human's own rejections are reported
// at the prompt.
func reportEvents(w output.SnapshotWriter, out io.Writer, human chess.Colour, showRejections bool) session.Observer {
	return func(ev session.Event) {
		switch ev.Kind {
		case session.EventMoved:
			_ = w.WriteMove(*ev.Record)
		case session.EventRejected:
			r := ev.Rejection
			if !showRejections || r.Colour == human {
				return
			}
			if r.Move == "" {
				fmt.Fprintf(out, "Opponent gave no move (%s). Asking again...\n", r.Reason)
				return
			}
			fmt.Fprintf(out, "Opponent suggested an invalid move %s (%s). Asking again...\n", r.Move, r.Reason)
		}
	}
}

// announcer shows the position before the first attempt of each turn.
type announcer struct {
	session.Player
	w output.SnapshotWriter
}

func (a *announcer) NextMove(ctx context.Context, turn session.Turn) (chess.Move, error) {
	if turn.Attempt == 1 {
		_ = a.w.WriteSnapshot(turn.Snapshot)
	}
	return a.Player.NextMove(ctx, turn)
}

func (a *announcer) Interactive() bool {
	i, ok := a.Player.(session.Interactive)
	return ok && i.Interactive()
}
