package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessattacks/internal/board"
)

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("render: parse regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("render: parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: font face: %w", err)
	}
	return face, nil
}

// RenderImage rasterises the diagram. Pieces are drawn as their FEN letters
// since the bundled Go fonts carry no chess glyphs.
func RenderImage(pos board.Position, opts Options) (*image.RGBA, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	drawSVG(&buf, pos, opts, false)

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("render: parse svg: %w", err)
	}

	size := opts.Size
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	if err := drawLabels(rgba, pos, opts); err != nil {
		return nil, err
	}
	return rgba, nil
}

func drawLabels(dst *image.RGBA, pos board.Position, opts Options) error {
	cell := opts.Size / 8
	th := opts.Theme

	pieceFace, err := newFace(boldFont, float64(cell)*0.6)
	if err != nil {
		return err
	}
	defer pieceFace.Close()

	coordFace, err := newFace(regularFont, float64(cell)/6+1)
	if err != nil {
		return err
	}
	defer coordFace.Close()

	d := &font.Drawer{Dst: dst, Face: pieceFace}
	for _, sq := range pos.Occupied().Squares() {
		p := pos.PieceAt(sq)
		label := strings.ToUpper(p.String())

		d.Src = image.NewUniform(th.WhitePiece)
		if p.Color() == board.Black {
			d.Src = image.NewUniform(th.BlackPiece)
		}

		x, y := squareXY(sq, cell)
		adv := d.MeasureString(label)
		m := pieceFace.Metrics()
		d.Dot = fixed.Point26_6{
			X: fixed.I(x+cell/2) - adv/2,
			Y: fixed.I(y+cell/2) + (m.Ascent-m.Descent)/2,
		}
		// Outline the glyph in the opposite color so it reads on both square shades.
		if p.Color() == board.White {
			outline := *d
			outline.Src = image.NewUniform(th.BlackPiece)
			for _, off := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				outline.Dot = d.Dot.Add(fixed.P(off[0], off[1]))
				outline.DrawString(label)
			}
		}
		d.DrawString(label)
	}

	d = &font.Drawer{Dst: dst, Src: image.NewUniform(th.TextColor), Face: coordFace}
	for i := 0; i < 8; i++ {
		d.Dot = fixed.P(i*cell+2, opts.Size-3)
		d.DrawString(string(rune('a' + i)))
		d.Dot = fixed.P(2, (7-i)*cell+cell/6+2)
		d.DrawString(string(rune('1' + i)))
	}
	return nil
}

// WritePNG encodes the rasterised diagram to w.
func WritePNG(w io.Writer, pos board.Position, opts Options) error {
	img, err := RenderImage(pos, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
