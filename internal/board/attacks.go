package board

import "fmt"

// Occupancy is the read-only view the attack generator needs: which color,
// if any, stands on a square. Position satisfies it.
type Occupancy interface {
	ColorAt(sq Square) (Color, bool)
}

// Attacks returns the squares a piece of kind pt standing on sq threatens
// for side. Empty squares and squares holding an opposing piece are
// attacked; squares holding a piece of side are not. Sliders stop at the
// first occupied square in each direction. The opposing king is treated
// like any other opposing piece.
//
// pos is never modified.
func Attacks(pt PieceType, pos Occupancy, sq Square, side Color) Bitboard {
	sq.mustBeValid()

	switch pt {
	case King:
		return LeaperAttacks(pos, sq, side, KingDirections)
	case Knight:
		return LeaperAttacks(pos, sq, side, KnightDirections)
	case Pawn:
		return PawnAttacks(pos, sq, side)
	case Rook:
		return SliderAttacks(pos, sq, side, RookDirections)
	case Bishop:
		return SliderAttacks(pos, sq, side, BishopDirections)
	case Queen:
		return SliderAttacks(pos, sq, side, QueenDirections)
	default:
		panic(fmt.Sprintf("board: unknown piece type %d", uint8(pt)))
	}
}

// PawnAttacks returns the two forward diagonal squares of a pawn, filtered
// by the same rule as king and knight targets. Pushes are not attacks.
func PawnAttacks(pos Occupancy, sq Square, side Color) Bitboard {
	switch side {
	case White:
		return LeaperAttacks(pos, sq, side, []Direction{UpLeft, UpRight})
	case Black:
		return LeaperAttacks(pos, sq, side, []Direction{DownLeft, DownRight})
	default:
		panic(fmt.Sprintf("board: unknown color %d", uint8(side)))
	}
}

// LeaperAttacks takes one step in each direction. A landing square is kept
// unless it holds a piece of side. There is no path to block.
func LeaperAttacks(pos Occupancy, sq Square, side Color, dirs []Direction) Bitboard {
	attacks := Empty
	for _, dir := range dirs {
		to, ok := Step(sq, dir)
		if !ok {
			continue
		}
		if c, occupied := pos.ColorAt(to); occupied && c == side {
			continue
		}
		attacks |= SquareBB(to)
	}
	return attacks
}

// SliderAttacks casts a ray in each direction. Empty squares are added and
// the ray continues; an opposing piece is added and ends the ray; a piece
// of side ends the ray without being added. Each ray is at most seven
// squares long.
func SliderAttacks(pos Occupancy, sq Square, side Color, dirs []Direction) Bitboard {
	attacks := Empty
	for _, dir := range dirs {
		from := sq
		for {
			to, ok := Step(from, dir)
			if !ok {
				break
			}
			c, occupied := pos.ColorAt(to)
			if occupied && c == side {
				break
			}
			attacks |= SquareBB(to)
			if occupied {
				break
			}
			from = to
		}
	}
	return attacks
}

// PieceAttacks returns the attacks of whatever stands on sq, for the side
// to move. An empty square, or a piece of the side not to move, attacks
// nothing.
func (g Game) PieceAttacks(sq Square) Bitboard {
	piece := g.Position.PieceAt(sq)
	side := g.SideToMove()
	if piece == NoPiece || piece.Color() != side {
		return Empty
	}
	return Attacks(piece.Type(), g.Position, sq, side)
}

// AttackMap returns the union of the attacks of every piece of side.
func (p Position) AttackMap(side Color) Bitboard {
	attacks := Empty
	for pt := PieceType(0); pt < NoPieceType; pt++ {
		for _, sq := range p.Pieces(side, pt).Squares() {
			attacks |= Attacks(pt, p, sq, side)
		}
	}
	return attacks
}

// IsSquareAttacked returns true if a piece of byColor attacks sq. Squares
// holding byColor's own pieces are never reported as attacked.
func (p Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackMap(byColor).At(sq)
}

// Checkers returns the pieces of the opponent that attack side's king.
func (p Position) Checkers(side Color) Bitboard {
	kings := p.Pieces(side, King)
	if kings.IsEmpty() {
		return Empty
	}
	them := side.Other()
	checkers := Empty
	for pt := PieceType(0); pt < NoPieceType; pt++ {
		for _, sq := range p.Pieces(them, pt).Squares() {
			if Attacks(pt, p, sq, them)&kings != 0 {
				checkers |= SquareBB(sq)
			}
		}
	}
	return checkers
}

// InCheck returns true if side's king is attacked.
func (p Position) InCheck(side Color) bool {
	return p.AttackMap(side.Other())&p.Pieces(side, King) != 0
}
