// Package storage archives finished sessions in BadgerDB.
package storage

import (
	"encoding/json"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/lgbarn/clichess-go/internal/config"
	"github.com/lgbarn/clichess-go/internal/errors"
	"github.com/lgbarn/clichess-go/internal/session"
)

// Game records live under game/<id>.
const gamePrefix = "game/"

// Stats summarises the archive.
type Stats struct {
	Games      int `json:"games"`
	WhiteWins  int `json:"white_wins"`
	BlackWins  int `json:"black_wins"`
	Stalemates int `json:"stalemates"`
	Unfinished int `json:"unfinished"`
	TotalPlies int `json:"total_plies"`
}

// Storage wraps BadgerDB for the game archive.
type Storage struct {
	db *badger.DB
}

// Open opens the archive in dir, or in the platform data directory when dir is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, errors.Wrap(err, "locate data directory")
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	return open(opts)
}

// OpenInMemory opens an archive that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

// OpenConfig opens the archive described by cfg. It returns nil when
// storage is disabled.
func OpenConfig(cfg *config.StorageConfig) (*Storage, error) {
	switch {
	case !cfg.Enabled:
		return nil, nil
	case cfg.InMemory:
		return OpenInMemory()
	}
	return Open(cfg.Dir)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open game archive")
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// SaveGame stores rec, replacing any record with the same id. A record
// without an id is given one.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame returns the record with id, or ErrGameNotFound.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteGame removes the record with id, or returns ErrGameNotFound.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every archived game, newest first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].StartedAt.After(games[j].StartedAt)
	})
	return games, nil
}

// Stats tallies results across the archive.
func (s *Storage) Stats() (*Stats, error) {
	games, err := s.ListGames()
	if err != nil {
		return nil, err
	}

	stats := &Stats{Games: len(games)}
	for _, g := range games {
		stats.TotalPlies += len(g.Moves)
		switch g.State {
		case session.WhiteWinsByCheckmate:
			stats.WhiteWins++
		case session.BlackWinsByCheckmate:
			stats.BlackWins++
		case session.Stalemate:
			stats.Stalemates++
		default:
			stats.Unfinished++
		}
	}
	return stats, nil
}
