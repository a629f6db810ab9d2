package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// EmptyFEN describes a board with no pieces, White to move.
const EmptyFEN = "8/8/8/8/8/8/8/8 w - - 0 1"

// ParseFEN parses a FEN string and returns the occupancy and side to move.
// Only the placement field is required; a missing side field means White.
// Castling, en passant and move counters are accepted but not kept, since
// the attack generator has no use for them.
func ParseFEN(fen string) (Position, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return Position{}, NoColor, fmt.Errorf("invalid FEN: empty string")
	}
	if len(parts) > 6 {
		return Position{}, NoColor, fmt.Errorf("invalid FEN: too many fields (%d)", len(parts))
	}

	pos, err := parsePiecePlacement(parts[0])
	if err != nil {
		return Position{}, NoColor, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			side = White
		case "b":
			side = Black
		default:
			return Position{}, NoColor, fmt.Errorf("invalid side to move: %s", parts[1])
		}
	}

	return pos, side, nil
}

// MustParseFEN is like ParseFEN but panics on error. Intended for fixed
// positions in tests and examples.
func MustParseFEN(fen string) Position {
	pos, _, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement string) (Position, error) {
	var pos Position

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return pos, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return pos, fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			if c > 0x7f {
				return pos, fmt.Errorf("invalid piece character: %c", c)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return pos, fmt.Errorf("invalid piece character: %c", c)
			}
			pos = pos.Put(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return pos, fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return pos, nil
}

// Placement returns the FEN piece placement field of the position.
func (p Position) Placement() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// ToFEN returns a FEN string for the position with the given side to move.
// Castling and en passant are not tracked and are written as "-".
func (p Position) ToFEN(side Color) string {
	s := "w"
	if side == Black {
		s = "b"
	}
	return p.Placement() + " " + s + " - - 0 1"
}
