package cache

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	_ "modernc.org/sqlite"

	"github.com/chazu/lazyk/graph"
)

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = errors.New("cache: not found")

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cache: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Store is a SQLite-backed content-addressed cache of parsed programs.
// modernc.org/sqlite is used here rather than a cgo sqlite driver, so
// lazyk stays a pure-Go binary with no cgo toolchain dependency.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) a cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		hash TEXT PRIMARY KEY,
		graph BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key hashes source text to a content-addressed cache key, the same way a
// compiled-method store keys its blobs by content hash rather than by name.
func Key(source []byte) [32]byte {
	return sha256.Sum256(source)
}

// Put stores the parsed expression rooted at root, keyed by key.
func (s *Store) Put(key [32]byte, h *graph.Heap, root graph.Ref) error {
	payload, err := cborEncMode.Marshal(flatten(h, root))
	if err != nil {
		return fmt.Errorf("cache: encoding graph: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO programs (hash, graph) VALUES (?, ?)",
		fmt.Sprintf("%x", key), payload,
	)
	if err != nil {
		return fmt.Errorf("cache: storing graph: %w", err)
	}
	return nil
}

// Get looks up key and, on a hit, reconstructs the expression into h,
// returning its new root Ref. Returns ErrNotFound on a miss.
func (s *Store) Get(key [32]byte, h *graph.Heap) (graph.Ref, error) {
	s.mu.Lock()
	var payload []byte
	err := s.db.QueryRow(
		"SELECT graph FROM programs WHERE hash = ?", fmt.Sprintf("%x", key),
	).Scan(&payload)
	s.mu.Unlock()

	if errors.Is(err, sql.ErrNoRows) {
		return graph.NilRef, ErrNotFound
	}
	if err != nil {
		return graph.NilRef, fmt.Errorf("cache: querying graph: %w", err)
	}

	var g flatGraph
	if err := cbor.Unmarshal(payload, &g); err != nil {
		return graph.NilRef, fmt.Errorf("cache: decoding graph: %w", err)
	}
	return rebuild(h, g), nil
}
