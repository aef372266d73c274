// Package server exposes a read-only spectator view of a session over HTTP
// and websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/logging"
	"github.com/lgbarn/clichess-go/internal/output"
	"github.com/lgbarn/clichess-go/internal/session"
	"github.com/lgbarn/clichess-go/internal/storage"
)

const writeTimeout = 5 * time.Second

// Source provides the live game.
type Source interface {
	Snapshot() session.Snapshot
	History() []session.MoveRecord
}

// Archive provides finished games.
type Archive interface {
	ListGames() ([]*storage.GameRecord, error)
	LoadGame(id string) (*storage.GameRecord, error)
	Stats() (*storage.Stats, error)
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Server serves the spectator API.
type Server struct {
	router  *mux.Router
	handler http.Handler
	archive Archive
	logger  *zap.Logger

	sourceMu sync.RWMutex
	source   Source

	clients     map[*client]struct{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
}

// New creates a server. archive may be nil when the archive is disabled.
func New(archive Archive, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	s := &Server{
		router:  mux.NewRouter(),
		archive: archive,
		logger:  logger,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	api := s.router.PathPrefix("/api").Methods(http.MethodGet).Subrouter()
	api.HandleFunc("/game", s.gameHandler)
	api.HandleFunc("/games", s.gamesHandler)
	api.HandleFunc("/games/{id}", s.gameRecordHandler)
	api.HandleFunc("/stats", s.statsHandler)
	s.router.HandleFunc("/ws", s.wsHandler)
	s.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	s.handler = handlers.LoggingHandler(zap.NewStdLog(logger.Named("http")).Writer(), s.router)
	return s
}

// Attach sets the live game served by /api/game and /ws.
func (s *Server) Attach(src Source) {
	s.sourceMu.Lock()
	s.source = src
	s.sourceMu.Unlock()
}

func (s *Server) currentSource() Source {
	s.sourceMu.RLock()
	defer s.sourceMu.RUnlock()
	return s.source
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var result error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			result = multierror.Append(result, err)
		}
		if err := s.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		return result
	}
}

// Close disconnects every websocket client.
func (s *Server) Close() error {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()

	var result error
	for c := range s.clients {
		if err := c.conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		delete(s.clients, c)
	}
	return result
}

// Observe broadcasts a session event to websocket clients. It is meant to be
// registered with session.WithObserver.
func (s *Server) Observe(ev session.Event) {
	data, err := json.Marshal(newEventMessage(ev))
	if err != nil {
		s.logger.Error("encode event", zap.Error(err))
		return
	}
	s.broadcast(data)
}

func (s *Server) broadcast(data []byte) {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()
	for c := range s.clients {
		if err := c.send(data); err != nil {
			s.logger.Debug("websocket send failed", zap.Error(err))
		}
	}
}

func (s *Server) gameHandler(w http.ResponseWriter, _ *http.Request) {
	src := s.currentSource()
	if src == nil {
		http.Error(w, "no game in progress", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, gameResponse{
		Snapshot: output.SnapshotToJSON(src.Snapshot()),
		History:  output.HistoryToJSON(src.History()),
	})
}

func (s *Server) gamesHandler(w http.ResponseWriter, _ *http.Request) {
	if s.archive == nil {
		http.Error(w, "archive disabled", http.StatusServiceUnavailable)
		return
	}
	games, err := s.archive.ListGames()
	if err != nil {
		s.internalError(w, err)
		return
	}
	if games == nil {
		games = []*storage.GameRecord{}
	}
	writeJSON(w, games)
}

func (s *Server) gameRecordHandler(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		http.Error(w, "archive disabled", http.StatusServiceUnavailable)
		return
	}
	rec, err := s.archive.LoadGame(mux.Vars(r)["id"])
	if errors.Is(err, chesserrors.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, rec)
}

func (s *Server) statsHandler(w http.ResponseWriter, _ *http.Request) {
	if s.archive == nil {
		http.Error(w, "archive disabled", http.StatusServiceUnavailable)
		return
	}
	stats, err := s.archive.Stats()
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn}
	s.logger.Debug("websocket connected", zap.String("remote", conn.RemoteAddr().String()))

	if src := s.currentSource(); src != nil {
		data, err := json.Marshal(eventMessage{Event: "snapshot", Snapshot: output.SnapshotToJSON(src.Snapshot())})
		if err == nil {
			_ = c.send(data)
		}
	}

	s.clientsLock.Lock()
	s.clients[c] = struct{}{}
	s.clientsLock.Unlock()

	// Spectators only listen; reading detects disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.clientsLock.Lock()
				delete(s.clients, c)
				s.clientsLock.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
