// Package storage persists perft results across runs.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/sfen"
)

// Storage keys
const keyPerftPrefix = "perft/"

// GetDatabaseDir returns the default perft database directory, a "perft"
// subdirectory of GetDataDir, creating it if needed.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "perft")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}

// Options configures a PerftStore.
type Options struct {
	// Dir is the database directory. Empty means GetDatabaseDir().
	Dir string

	// InMemory keeps the database in memory only; Dir is ignored.
	InMemory bool

	// Logger receives badger's own log output and store diagnostics.
	// The zero value discards everything.
	Logger logr.Logger
}

// PerftRecord is one stored perft result.
type PerftRecord struct {
	Position string            `json:"position"` // SFEN without the move number
	Checksum uint64            `json:"checksum"` // xxhash of Position
	Depth    int               `json:"depth"`
	Nodes    uint64            `json:"nodes"`
	Divide   map[string]uint64 `json:"divide,omitempty"` // USI move -> nodes
	Elapsed  time.Duration     `json:"elapsed"`
	Created  time.Time         `json:"created"`
}

// PerftStore wraps BadgerDB to persist perft results keyed by position hash
// and depth.
type PerftStore struct {
	db  *badger.DB
	log logr.Logger
}

// Open opens (creating if needed) a perft store.
func Open(opts Options) (*PerftStore, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = GetDatabaseDir(); err != nil {
				return nil, fmt.Errorf("locating database: %w", err)
			}
		}
		bopts = badger.DefaultOptions(dir)
	}
	bopts.Logger = NewBadgerLogger(opts.Logger)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening perft store: %w", err)
	}

	return &PerftStore{db: db, log: opts.Logger.WithName("perftstore")}, nil
}

// Close closes the database
func (s *PerftStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	return []byte(fmt.Sprintf("%s%016x/%02d", keyPerftPrefix, hash, depth))
}

// positionID is the SFEN of pos without its move number, so the same
// position reached by different move orders has one identity.
func positionID(pos *board.Position) string {
	fields := strings.Fields(sfen.Format(pos))
	return strings.Join(fields[:3], " ")
}

// NewRecord builds a record for pos from a finished count.
func NewRecord(pos *board.Position, depth int, nodes uint64, divide map[board.Move]uint64, elapsed time.Duration) *PerftRecord {
	id := positionID(pos)
	rec := &PerftRecord{
		Position: id,
		Checksum: xxhash.Sum64String(id),
		Depth:    depth,
		Nodes:    nodes,
		Elapsed:  elapsed,
		Created:  time.Now(),
	}
	if len(divide) > 0 {
		rec.Divide = make(map[string]uint64, len(divide))
		for m, n := range divide {
			rec.Divide[m.String()] = n
		}
	}
	return rec
}

// Put stores rec under pos's hash, replacing any earlier record for the
// same position and depth.
func (s *PerftStore) Put(pos *board.Position, rec *PerftRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(pos.Hash, rec.Depth), data)
	})
}

// Get returns the stored record for pos at depth. A record stored under the
// same hash for a different position is reported as a miss.
func (s *PerftStore) Get(pos *board.Position, depth int) (*PerftRecord, bool, error) {
	var rec *PerftRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(pos.Hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec = new(PerftRecord)
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil || rec == nil {
		return nil, false, err
	}

	id := positionID(pos)
	if rec.Checksum != xxhash.Sum64String(id) || rec.Position != id {
		s.log.V(1).Info("hash collision", "hash", fmt.Sprintf("%016x", pos.Hash), "stored", rec.Position, "wanted", id)
		return nil, false, nil
	}
	return rec, true, nil
}

// Delete removes the record for pos at depth, if any.
func (s *PerftStore) Delete(pos *board.Position, depth int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(perftKey(pos.Hash, depth))
	})
}

// ForEach calls fn for every stored record in key order. Iteration stops at
// the first error fn returns.
func (s *PerftStore) ForEach(fn func(*PerftRecord) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPerftPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec PerftRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}
