package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor parses "w"/"white" or "b"/"black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "w", "W", "white", "White":
		return White, nil
	case "b", "B", "black", "Black":
		return Black, nil
	}
	return NoColor, fmt.Errorf("invalid color: %q", s)
}

// PieceType represents the kind of a chess piece. The order indexes
// Position.Kinds.
type PieceType uint8

const (
	Pawn PieceType = iota
	King
	Rook
	Queen
	Knight
	Bishop
	NoPieceType PieceType = 6
)

// NumPieceTypes is the number of real piece kinds.
const NumPieceTypes = 6

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case King:
		return "King"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'k', 'r', 'q', 'n', 'b', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// ParsePieceType parses a FEN letter in either case.
func ParsePieceType(s string) (PieceType, error) {
	if len(s) == 1 {
		p := PieceFromChar(s[0])
		if p != NoPiece {
			return p.Type(), nil
		}
	}
	return NoPieceType, fmt.Errorf("invalid piece type: %q", s)
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	chars := "PKRQNBpkrqnb"
	return string(chars[p])
}

// Symbol returns the unicode chess glyph for the piece.
func (p Piece) Symbol() string {
	if p >= NoPiece {
		return " "
	}
	symbols := []string{"♙", "♔", "♖", "♕", "♘", "♗", "♟", "♚", "♜", "♛", "♞", "♝"}
	return symbols[p]
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'K':
		return WhiteKing
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'p':
		return BlackPawn
	case 'k':
		return BlackKing
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	default:
		return NoPiece
	}
}
