package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hailam/chessattacks/internal/board"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func snapshotFor(t *testing.T, fen string, pt board.PieceType, sq board.Square, side board.Color) Snapshot {
	t.Helper()
	pos := board.MustParseFEN(fen)
	return Snapshot{
		Query:   NewQuery(pos, pt, sq, side),
		Attacks: board.Attacks(pt, pos, sq, side),
	}
}

func TestRecordLookup(t *testing.T) {
	s := openTest(t)
	snap := snapshotFor(t, board.StartFEN, board.Knight, board.G1, board.White)

	if err := s.Record(snap); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Lookup(snap.Query)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Query != snap.Query {
		t.Errorf("query = %+v, want %+v", got.Query, snap.Query)
	}
	if got.Attacks != board.FromSquares(board.F3, board.H3) {
		t.Errorf("attacks = %v", got.Attacks.Squares())
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestLookupNotFound(t *testing.T) {
	s := openTest(t)
	q := NewQuery(board.InitialPosition(), board.Rook, board.A1, board.White)

	if _, err := s.Lookup(q); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(q); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete err = %v, want ErrNotFound", err)
	}
}

func TestRecordRejectsInvalid(t *testing.T) {
	s := openTest(t)
	good := snapshotFor(t, board.EmptyFEN, board.Rook, board.D4, board.White)

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"bad placement", func(s *Snapshot) { s.Placement = "8/8/8" }},
		{"bad piece", func(s *Snapshot) { s.Piece = board.NoPieceType }},
		{"bad square", func(s *Snapshot) { s.Square = board.NoSquare }},
		{"bad side", func(s *Snapshot) { s.Side = board.NoColor }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := good
			tc.mutate(&snap)
			if err := s.Record(snap); err == nil {
				t.Error("Record expected error")
			}
		})
	}
}

func TestRecordReplaces(t *testing.T) {
	s := openTest(t)
	snap := snapshotFor(t, board.EmptyFEN, board.Rook, board.D4, board.White)
	snap.CreatedAt = time.Unix(1000, 0)
	if err := s.Record(snap); err != nil {
		t.Fatal(err)
	}
	snap.Attacks = board.Empty
	if err := s.Record(snap); err != nil {
		t.Fatal(err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List returned %d snapshots, want 1", len(all))
	}
	if all[0].Attacks != board.Empty {
		t.Error("second Record did not replace the first")
	}
	if !all[0].CreatedAt.Equal(time.Unix(1000, 0)) {
		t.Errorf("CreatedAt = %v, want preserved value", all[0].CreatedAt)
	}
}

func TestListAndDelete(t *testing.T) {
	s := openTest(t)
	snaps := []Snapshot{
		snapshotFor(t, board.StartFEN, board.Pawn, board.E2, board.White),
		snapshotFor(t, board.StartFEN, board.Pawn, board.E7, board.Black),
		snapshotFor(t, "4k3/8/8/8/8/8/8/4R1K1 w", board.Rook, board.E1, board.White),
	}
	for _, snap := range snaps {
		if err := s.Record(snap); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(snaps) {
		t.Fatalf("List returned %d, want %d", len(all), len(snaps))
	}

	if err := s.Delete(snaps[1].Query); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Lookup(snaps[1].Query); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted snapshot still found: %v", err)
	}
	all, _ = s.List()
	if len(all) != 2 {
		t.Errorf("List after delete returned %d, want 2", len(all))
	}
}

func TestVerify(t *testing.T) {
	s := openTest(t)
	snaps := []Snapshot{
		snapshotFor(t, board.StartFEN, board.Knight, board.B1, board.White),
		snapshotFor(t, "4k3/8/8/3p4/8/8/8/3Q2K1 w", board.Queen, board.D1, board.White),
	}
	for _, snap := range snaps {
		if err := s.Record(snap); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	mismatches, err := s.Verify(board.Attacks)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("unexpected mismatches: %+v", mismatches)
	}

	broken := func(board.PieceType, board.Occupancy, board.Square, board.Color) board.Bitboard {
		return board.Empty
	}
	mismatches, err = s.Verify(broken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(mismatches) != 2 {
		t.Fatalf("mismatches = %d, want 2", len(mismatches))
	}
	for _, m := range mismatches {
		if m.Got != board.Empty || m.Snapshot.Attacks == board.Empty {
			t.Errorf("mismatch %s: got %v want %v", m.Snapshot.Query, m.Got, m.Snapshot.Attacks)
		}
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	snap := snapshotFor(t, board.StartFEN, board.Bishop, board.C1, board.White)

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Record(snap); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Lookup(snap.Query)
	if err != nil {
		t.Fatalf("Lookup after reopen: %v", err)
	}
	if got.Attacks != board.Empty {
		t.Errorf("c1 bishop in the start position attacks %v, want nothing", got.Attacks.Squares())
	}
}

func TestDatabaseDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	t.Setenv(EnvDatabaseDir, dir)

	got, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir: %v", err)
	}
	if got != dir {
		t.Errorf("GetDatabaseDir = %q, want %q", got, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if filepath.Base(dataDir) != appName {
		t.Errorf("data dir %q does not end in %q", dataDir, appName)
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}
