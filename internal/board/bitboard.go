package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit set where each bit corresponds to a square.
// Square i lives at bit 63-i: A1 is the most significant bit and H8 the
// least significant one, so reading the binary literal left to right walks
// the board from A1 to H8.
type Bitboard uint64

// Empty has no squares set.
const Empty Bitboard = 0

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	sq.mustBeValid()
	return 1 << (63 - sq)
}

// At returns true if the bit at the given square is set.
func (b Bitboard) At(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Set returns a copy of b with the bit at sq switched to value.
func (b Bitboard) Set(sq Square, value bool) Bitboard {
	if value {
		return b | SquareBB(sq)
	}
	return b &^ SquareBB(sq)
}

// FromSquares builds a bitboard holding every listed square.
func FromSquares(sqs ...Square) Bitboard {
	b := Empty
	for _, sq := range sqs {
		b = b.Set(sq, true)
	}
	return b
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// Squares returns the set squares in ascending index order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		// Highest bit is the lowest square.
		lz := bits.LeadingZeros64(uint64(b))
		squares = append(squares, Square(lz))
		b &^= 1 << (63 - lz)
	}
	return squares
}

// Reverse converts between this package's bit order and little-endian
// rank-file mapping (bit i = square i). The conversion is its own inverse.
func (b Bitboard) Reverse() Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// LERF returns the bitboard as a little-endian rank-file uint64.
func (b Bitboard) LERF() uint64 {
	return uint64(b.Reverse())
}

// FromLERF converts a little-endian rank-file uint64 into a Bitboard.
func FromLERF(v uint64) Bitboard {
	return Bitboard(v).Reverse()
}

// Draw returns an 8x8 grid of the bitboard, rank 8 on top and file A on the
// left, with set squares marked "x".
func (b Bitboard) Draw() string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString(" | ")
		for file := 0; file < 8; file++ {
			if b.At(NewSquare(file, rank)) {
				sb.WriteString("x ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("   ")
	for file := 0; file < 8; file++ {
		sb.WriteByte(' ')
		sb.WriteByte(NewSquare(file, 0).FileChar())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	return b.Draw()
}
