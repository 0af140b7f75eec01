package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	"github.com/hailam/laserchess/internal/engine"
)

// Storage keys
const (
	keyWeights        = "weights"
	keyAnalysisPrefix = "analysis/"
)

// AnalysisRecord is a stored evaluation of one position.
type AnalysisRecord struct {
	FEN         string                `json:"fen"`
	Score       int                   `json:"score"`
	Fingerprint uint64                `json:"fingerprint"`
	Terms       []engine.Contribution `json:"terms,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Options configures Open.
type Options struct {
	Dir      string // database directory; ignored when InMemory
	InMemory bool
	Logger   logr.Logger
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log logr.Logger
}

// Open opens (or creates) the database.
func Open(opts Options) (*Storage, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = &badgerLogger{log: opts.Logger.WithName("badger")}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Storage{db: db, log: opts.Logger}, nil
}

// NewStorage opens the database in the platform data directory.
func NewStorage(log logr.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	log.V(1).Info("opening database", "dir", dbDir)
	return Open(Options{Dir: dbDir, Logger: log})
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveWeights stores the evaluation weights.
func (s *Storage) SaveWeights(w engine.Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyWeights), data)
	})
}

// LoadWeights loads the stored weights, returns defaults if not found.
// Fields missing from an older record keep their default values.
func (s *Storage) LoadWeights() (engine.Weights, error) {
	w := engine.DefaultWeights()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyWeights))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &w)
		})
	})
	if err != nil {
		return engine.DefaultWeights(), err
	}

	if err := w.Validate(); err != nil {
		return engine.DefaultWeights(), fmt.Errorf("stored weights: %w", err)
	}
	return w, nil
}

// analysisKey groups records by parameter set, then by position.
func analysisKey(fingerprint uint64, fen string) []byte {
	return []byte(fmt.Sprintf("%s%016x/%016x", keyAnalysisPrefix, fingerprint, xxhash.Sum64String(fen)))
}

// SaveAnalysis stores an evaluation record.
func (s *Storage) SaveAnalysis(rec AnalysisRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(analysisKey(rec.Fingerprint, rec.FEN), data)
	})
}

// LoadAnalysis returns the record for fen under the given weights fingerprint.
func (s *Storage) LoadAnalysis(fen string, fingerprint uint64) (*AnalysisRecord, bool, error) {
	var rec AnalysisRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(fingerprint, fen))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return nil, false, err
	}
	// Hash collision between two FENs
	if rec.FEN != fen {
		return nil, false, nil
	}
	return &rec, true, nil
}

// CountAnalyses returns the number of records stored for a fingerprint.
func (s *Storage) CountAnalyses(fingerprint uint64) (int, error) {
	prefix := []byte(fmt.Sprintf("%s%016x/", keyAnalysisPrefix, fingerprint))
	n := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})

	return n, err
}
