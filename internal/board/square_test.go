package board

import "testing"

func TestSquareCoordinates(t *testing.T) {
	tests := []struct {
		sq         Square
		file, rank int
		name       string
	}{
		{A1, 0, 0, "a1"},
		{B8, 1, 7, "b8"},
		{A7, 0, 6, "a7"},
		{C3, 2, 2, "c3"},
		{E4, 4, 3, "e4"},
		{H2, 7, 1, "h2"},
		{F8, 5, 7, "f8"},
		{H8, 7, 7, "h8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sq.File(); got != tc.file {
				t.Errorf("File() = %d, want %d", got, tc.file)
			}
			if got := tc.sq.Rank(); got != tc.rank {
				t.Errorf("Rank() = %d, want %d", got, tc.rank)
			}
			if got := tc.sq.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
			if got := NewSquare(tc.file, tc.rank); got != tc.sq {
				t.Errorf("NewSquare(%d, %d) = %d, want %d", tc.file, tc.rank, got, tc.sq)
			}
		})
	}
}

func TestSquareIndexLayout(t *testing.T) {
	if D4 != 27 {
		t.Errorf("D4 = %d, want 27", D4)
	}
	for sq := A1; sq <= H8; sq++ {
		if int(sq) != sq.Rank()*8+sq.File() {
			t.Fatalf("square %d does not match rank*8+file", sq)
		}
	}
	if A7.FileChar() != 'A' || H2.FileChar() != 'H' {
		t.Errorf("FileChar: got %c %c, want A H", A7.FileChar(), H2.FileChar())
	}
}

func TestParseSquare(t *testing.T) {
	valid := map[string]Square{"a1": A1, "h8": H8, "e4": E4, "D5": D5}
	for s, want := range valid {
		got, err := ParseSquare(s)
		if err != nil {
			t.Errorf("ParseSquare(%q) error: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseSquare(%q) = %v, want %v", s, got, want)
		}
	}

	for _, s := range []string{"", "e", "e9", "i1", "a0", "e44"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) expected error", s)
		}
	}
}

func TestSquareOutOfRangePanics(t *testing.T) {
	mustPanic(t, "File", func() { NoSquare.File() })
	mustPanic(t, "Rank", func() { Square(200).Rank() })
	mustPanic(t, "NewSquare", func() { NewSquare(8, 0) })
	mustPanic(t, "NewSquare negative", func() { NewSquare(0, -1) })
}

// mustPanic fails the test unless fn panics.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
