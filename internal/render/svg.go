package render

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chessattacks/internal/board"
)

// DefaultSize is the board edge in pixels when Options.Size is zero.
const DefaultSize = 480

// Options controls what a diagram shows.
type Options struct {
	Size    int            // board edge in pixels, rounded down to a multiple of 8
	Attacks board.Bitboard // squares to mark as attacked
	Origin  board.Bitboard // squares to highlight as the attacker, Empty for none
	Theme   *Theme         // nil means DefaultTheme()
}

func (o Options) withDefaults() (Options, error) {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Size < 64 {
		return o, fmt.Errorf("render: board size %d too small, need at least 64", o.Size)
	}
	o.Size -= o.Size % 8
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
	return o, nil
}

// squareXY returns the top-left pixel of sq.
func squareXY(sq board.Square, cell int) (int, int) {
	return sq.File() * cell, (7 - sq.Rank()) * cell
}

// WriteSVG writes an SVG diagram of pos with the attack set overlaid.
func WriteSVG(w io.Writer, pos board.Position, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	drawSVG(&buf, pos, opts, true)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("render: write svg: %w", err)
	}
	return nil
}

// drawSVG emits the board. Text elements (pieces and coordinates) are only
// written when withText is set; the rasteriser cannot draw them.
func drawSVG(w io.Writer, pos board.Position, opts Options, withText bool) {
	size := opts.Size
	cell := size / 8
	th := opts.Theme

	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)

	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := squareXY(sq, cell)
		fill := th.DarkSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = th.LightSquare
		}
		canvas.Rect(x, y, cell, cell, "fill:"+hex(fill))
	}

	for _, sq := range opts.Origin.Squares() {
		x, y := squareXY(sq, cell)
		canvas.Rect(x, y, cell, cell,
			fmt.Sprintf("fill:%s;fill-opacity:%s", hex(th.OriginSquare), opacity(th.OriginSquare)))
	}

	for _, sq := range opts.Attacks.Squares() {
		x, y := squareXY(sq, cell)
		cx, cy := x+cell/2, y+cell/2
		if pos.IsEmpty(sq) {
			canvas.Circle(cx, cy, cell/6,
				fmt.Sprintf("fill:%s;fill-opacity:%s", hex(th.AttackColor), opacity(th.AttackColor)))
			continue
		}
		canvas.Circle(cx, cy, cell/2-cell/16,
			fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%d",
				hex(th.CaptureColor), opacity(th.CaptureColor), cell/10+1))
	}

	if withText {
		pieceStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", cell*3/4)
		for _, sq := range pos.Occupied().Squares() {
			x, y := squareXY(sq, cell)
			canvas.Text(x+cell/2, y+cell/2, pos.PieceAt(sq).Symbol(), pieceStyle)
		}

		coordStyle := fmt.Sprintf("font-size:%dpx;fill:%s", cell/6+1, hex(th.TextColor))
		for i := 0; i < 8; i++ {
			canvas.Text(i*cell+2, size-3, string(rune('a'+i)), coordStyle)
			canvas.Text(2, (7-i)*cell+cell/6+2, string(rune('1'+i)), coordStyle)
		}
	}

	canvas.End()
}
