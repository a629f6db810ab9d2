package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessattacks/internal/board"
)

const snapshotPrefix = "attack/"

// ErrNotFound is returned when no snapshot matches a query.
var ErrNotFound = errors.New("storage: snapshot not found")

// Query identifies one attack computation: a piece kind placed on a square
// for a side, against the occupancy given by a FEN piece placement.
type Query struct {
	Placement string          `json:"placement"`
	Piece     board.PieceType `json:"piece"`
	Square    board.Square    `json:"square"`
	Side      board.Color     `json:"side"`
}

// NewQuery builds a query against pos.
func NewQuery(pos board.Position, pt board.PieceType, sq board.Square, side board.Color) Query {
	return Query{Placement: pos.Placement(), Piece: pt, Square: sq, Side: side}
}

// Position parses the query's placement.
func (q Query) Position() (board.Position, error) {
	pos, _, err := board.ParseFEN(q.Placement)
	return pos, err
}

func (q Query) validate() error {
	if _, err := q.Position(); err != nil {
		return err
	}
	if q.Piece >= board.NoPieceType {
		return fmt.Errorf("invalid piece type %d", q.Piece)
	}
	if !q.Square.IsValid() {
		return fmt.Errorf("invalid square %d", uint8(q.Square))
	}
	if q.Side > board.Black {
		return fmt.Errorf("invalid side %d", q.Side)
	}
	return nil
}

func (q Query) key() []byte {
	side := "w"
	if q.Side == board.Black {
		side = "b"
	}
	return []byte(fmt.Sprintf("%s%s|%c|%s|%s", snapshotPrefix, q.Placement, q.Piece.Char(), q.Square, side))
}

func (q Query) String() string {
	return strings.TrimPrefix(string(q.key()), snapshotPrefix)
}

// Snapshot is a stored attack set together with the query that produced it.
type Snapshot struct {
	Query
	Attacks   board.Bitboard `json:"attacks"`
	CreatedAt time.Time      `json:"created_at"`
}

// AttackFunc computes the attack set for a query. board.Attacks satisfies it.
type AttackFunc func(pt board.PieceType, pos board.Occupancy, sq board.Square, side board.Color) board.Bitboard

// Mismatch reports a snapshot whose recomputed attacks differ.
type Mismatch struct {
	Snapshot Snapshot
	Got      board.Bitboard
}

// Store wraps BadgerDB for attack snapshots.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenDefault opens the store in the platform database directory.
func OpenDefault() (*Store, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, fmt.Errorf("storage: database dir: %w", err)
	}
	return Open(dir)
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record saves snap, replacing any snapshot for the same query.
// A zero CreatedAt is set to the current time.
func (s *Store) Record(snap Snapshot) error {
	if err := snap.validate(); err != nil {
		return fmt.Errorf("storage: record %s: %w", snap.Query, err)
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snap.key(), data)
	})
}

// Lookup returns the snapshot for q or ErrNotFound.
func (s *Store) Lookup(q Query) (Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(q.key())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: lookup %s: %w", q, err)
	}
	return snap, nil
}

// List returns every stored snapshot in key order.
func (s *Store) List() ([]Snapshot, error) {
	var out []Snapshot
	prefix := []byte(snapshotPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var snap Snapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, snap)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot for q. It returns ErrNotFound if there is none.
func (s *Store) Delete(q Query) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(q.key()); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(q.key())
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", q, err)
	}
	return nil
}

// Verify recomputes every stored snapshot with fn and returns those whose
// result differs from the recorded attack set.
func (s *Store) Verify(fn AttackFunc) ([]Mismatch, error) {
	snaps, err := s.List()
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for _, snap := range snaps {
		pos, err := snap.Position()
		if err != nil {
			return nil, fmt.Errorf("storage: verify %s: %w", snap.Query, err)
		}
		if got := fn(snap.Piece, pos, snap.Square, snap.Side); got != snap.Attacks {
			mismatches = append(mismatches, Mismatch{Snapshot: snap, Got: got})
		}
	}
	return mismatches, nil
}
