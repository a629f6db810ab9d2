package board

import (
	"fmt"
	"strings"
)

// Game pairs a position with the number of half-moves played so far. The
// side to move is derived from that count.
type Game struct {
	Position    Position
	PlayedMoves int
}

// NewGame returns a game at the starting position.
func NewGame() Game {
	return Game{Position: InitialPosition()}
}

// SideToMove returns White after an even number of half-moves, Black
// otherwise.
func (g Game) SideToMove() Color {
	if g.PlayedMoves%2 == 0 {
		return White
	}
	return Black
}

// String draws the board with unicode pieces and the move count.
func (g Game) String() string {
	var sb strings.Builder
	const border = " +---+---+---+---+---+---+---+---+\n"

	sb.WriteString("\n" + border)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteString(" | ")
			sb.WriteString(g.Position.PieceAt(NewSquare(file, rank)).Symbol())
		}
		sb.WriteString(" |\n" + border)
	}
	fmt.Fprintf(&sb, " %d Moves played", g.PlayedMoves)

	return sb.String()
}
