package board

import (
	"errors"
	"fmt"
	"strings"
)

// Position holds piece occupancy by kind and by color. The two groups are
// co-maintained: every square set in a kind bitboard is set in exactly one
// color bitboard, and every square set in a color bitboard is set in exactly
// one kind bitboard.
type Position struct {
	Kinds  [NumPieceTypes]Bitboard // indexed by PieceType
	Colors [2]Bitboard             // indexed by Color
}

// Validation errors.
var (
	ErrKindOverlap  = errors.New("square set in more than one piece kind")
	ErrColorOverlap = errors.New("square set in both colors")
	ErrMissingColor = errors.New("piece has no color")
	ErrMissingKind  = errors.New("colored square has no piece kind")
)

// InitialPosition returns the standard starting position.
func InitialPosition() Position {
	var p Position
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		p = p.Put(NewPiece(back[file], White), NewSquare(file, 0))
		p = p.Put(NewPiece(Pawn, White), NewSquare(file, 1))
		p = p.Put(NewPiece(Pawn, Black), NewSquare(file, 6))
		p = p.Put(NewPiece(back[file], Black), NewSquare(file, 7))
	}
	return p
}

// ByKind returns the occupancy of a piece kind, both colors.
func (p Position) ByKind(pt PieceType) Bitboard {
	if pt >= NoPieceType {
		panic(fmt.Sprintf("board: unknown piece type %d", uint8(pt)))
	}
	return p.Kinds[pt]
}

// ByColor returns the occupancy of a color.
func (p Position) ByColor(c Color) Bitboard {
	if c >= NoColor {
		panic(fmt.Sprintf("board: unknown color %d", uint8(c)))
	}
	return p.Colors[c]
}

// Pieces returns the squares holding pieces of the given kind and color.
func (p Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.ByColor(c) & p.ByKind(pt)
}

// Occupied returns all occupied squares.
func (p Position) Occupied() Bitboard {
	return p.Colors[White] | p.Colors[Black]
}

// IsEmpty returns true if the square is empty.
func (p Position) IsEmpty(sq Square) bool {
	return !p.Occupied().At(sq)
}

// ColorAt returns the color of the piece on sq, and false for an empty square.
func (p Position) ColorAt(sq Square) (Color, bool) {
	bb := SquareBB(sq)
	switch {
	case p.Colors[White]&bb != 0:
		return White, true
	case p.Colors[Black]&bb != 0:
		return Black, true
	}
	return NoColor, false
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p Position) PieceAt(sq Square) Piece {
	c, ok := p.ColorAt(sq)
	if !ok {
		return NoPiece
	}

	bb := SquareBB(sq)
	for pt := PieceType(0); pt < NoPieceType; pt++ {
		if p.Kinds[pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// Put returns a copy of p with piece placed on sq, replacing any occupant.
func (p Position) Put(piece Piece, sq Square) Position {
	p = p.Remove(sq)
	if piece == NoPiece {
		return p
	}
	bb := SquareBB(sq)
	p.Kinds[piece.Type()] |= bb
	p.Colors[piece.Color()] |= bb
	return p
}

// Remove returns a copy of p with sq emptied.
func (p Position) Remove(sq Square) Position {
	bb := SquareBB(sq)
	for i := range p.Kinds {
		p.Kinds[i] &^= bb
	}
	p.Colors[White] &^= bb
	p.Colors[Black] &^= bb
	return p
}

// Validate checks the co-maintenance invariant between kind and color
// bitboards.
func (p Position) Validate() error {
	var kinds Bitboard
	for pt, bb := range p.Kinds {
		if overlap := kinds & bb; overlap != 0 {
			return fmt.Errorf("%w: %s at %v", ErrKindOverlap, PieceType(pt), overlap.Squares())
		}
		kinds |= bb
	}

	if overlap := p.Colors[White] & p.Colors[Black]; overlap != 0 {
		return fmt.Errorf("%w: %v", ErrColorOverlap, overlap.Squares())
	}

	colors := p.Occupied()
	if missing := kinds &^ colors; missing != 0 {
		return fmt.Errorf("%w: %v", ErrMissingColor, missing.Squares())
	}
	if missing := colors &^ kinds; missing != 0 {
		return fmt.Errorf("%w: %v", ErrMissingKind, missing.Squares())
	}

	return nil
}

// String returns a visual representation of the position using FEN letters.
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
