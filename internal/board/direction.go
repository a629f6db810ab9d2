package board

import "fmt"

// Direction is a single unit of movement on the board: one of the eight
// king/slider steps or one of the eight knight leaps.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight

	// Knight leaps. LeapUp* move two ranks and one file, LeapLeft* and
	// LeapRight* move two files and one rank.
	LeapUpLeft
	LeapUpRight
	LeapDownLeft
	LeapDownRight
	LeapLeftUp
	LeapLeftDown
	LeapRightUp
	LeapRightDown

	NumDirections = 16
)

// Direction groups, in the order attacks are collected.
var (
	RookDirections   = []Direction{Up, Right, Down, Left}
	BishopDirections = []Direction{UpLeft, UpRight, DownRight, DownLeft}
	QueenDirections  = []Direction{Up, Right, Down, Left, UpLeft, UpRight, DownRight, DownLeft}
	KingDirections   = []Direction{Up, Right, Down, Left, UpLeft, UpRight, DownLeft, DownRight}
	KnightDirections = []Direction{
		LeapUpLeft, LeapUpRight, LeapDownRight, LeapDownLeft,
		LeapLeftDown, LeapLeftUp, LeapRightDown, LeapRightUp,
	}
)

// delta is a (file, rank) offset.
type delta struct {
	df, dr int
}

var directionDeltas = [NumDirections]delta{
	Up:            {0, 1},
	Down:          {0, -1},
	Left:          {-1, 0},
	Right:         {1, 0},
	UpLeft:        {-1, 1},
	UpRight:       {1, 1},
	DownLeft:      {-1, -1},
	DownRight:     {1, -1},
	LeapUpLeft:    {-1, 2},
	LeapUpRight:   {1, 2},
	LeapDownLeft:  {-1, -2},
	LeapDownRight: {1, -2},
	LeapLeftUp:    {-2, 1},
	LeapLeftDown:  {-2, -1},
	LeapRightUp:   {2, 1},
	LeapRightDown: {2, -1},
}

var directionNames = [NumDirections]string{
	"Up", "Down", "Left", "Right", "UpLeft", "UpRight", "DownLeft", "DownRight",
	"LeapUpLeft", "LeapUpRight", "LeapDownLeft", "LeapDownRight",
	"LeapLeftUp", "LeapLeftDown", "LeapRightUp", "LeapRightDown",
}

// stepTable[sq][dir] is the destination of one step, NoSquare when the step
// leaves the board.
var stepTable [64][NumDirections]Square

func init() {
	initStepTable()
}

func initStepTable() {
	for sq := A1; sq <= H8; sq++ {
		for dir := Direction(0); dir < NumDirections; dir++ {
			stepTable[sq][dir] = computeStep(sq, dir)
		}
	}
}

// computeStep checks the destination coordinates before building an index.
// Checking the index alone is not enough: Left from a2 lands on h1, which is
// a perfectly valid index.
func computeStep(sq Square, dir Direction) Square {
	d := directionDeltas[dir]
	file := sq.File() + d.df
	rank := sq.Rank() + d.dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// IsValid reports whether d is one of the sixteen directions.
func (d Direction) IsValid() bool {
	return d < NumDirections
}

// String returns the direction name.
func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Step returns the square reached by moving once in dir from sq, and false
// when that step would leave the board.
func Step(sq Square, dir Direction) (Square, bool) {
	sq.mustBeValid()
	if !dir.IsValid() {
		panic(fmt.Sprintf("board: unknown direction %d", uint8(dir)))
	}
	to := stepTable[sq][dir]
	return to, to != NoSquare
}
