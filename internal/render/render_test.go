package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/chessattacks/internal/board"
)

func TestWriteSVG(t *testing.T) {
	pos := board.MustParseFEN("4k3/8/8/8/3p4/8/8/3R2K1 w")
	attacks := board.Attacks(board.Rook, pos, board.D1, board.White)

	var buf bytes.Buffer
	err := WriteSVG(&buf, pos, Options{Size: 400, Attacks: attacks, Origin: board.SquareBB(board.D1)})
	if err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 400 400"`) {
		t.Error("missing viewBox")
	}
	// 64 squares plus the origin highlight.
	if got := strings.Count(out, "<rect"); got != 65 {
		t.Errorf("rect count = %d, want 65", got)
	}
	if got := strings.Count(out, "<circle"); got != attacks.PopCount() {
		t.Errorf("circle count = %d, want %d", got, attacks.PopCount())
	}
	// The black pawn on d4 is a capture target.
	if !attacks.At(board.D4) {
		t.Fatal("rook on d1 should reach d4")
	}
	if got := strings.Count(out, "stroke:"+hex(DefaultTheme().CaptureColor)); got != 1 {
		t.Errorf("capture rings = %d, want 1", got)
	}
	for _, sym := range []string{"♔", "♚", "♖", "♟"} {
		if !strings.Contains(out, sym) {
			t.Errorf("missing piece %s", sym)
		}
	}
}

func TestWriteSVGNoOrigin(t *testing.T) {
	var buf bytes.Buffer
	// The zero Options highlight nothing.
	if err := WriteSVG(&buf, board.InitialPosition(), Options{}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if got := strings.Count(buf.String(), "<rect"); got != 64 {
		t.Errorf("rect count = %d, want 64", got)
	}
	if !strings.Contains(buf.String(), `width="480"`) {
		t.Error("default size not applied")
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"too small", Options{Size: 10}},
		{"negative", Options{Size: -480}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSVG(&buf, board.Position{}, tc.opts); err == nil {
				t.Error("WriteSVG expected error")
			}
			if _, err := RenderImage(board.Position{}, tc.opts); err == nil {
				t.Error("RenderImage expected error")
			}
		})
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 4 && d(a.G, b.G) <= 4 && d(a.B, b.B) <= 4
}

func TestRenderImage(t *testing.T) {
	const size = 320
	cell := size / 8
	th := DefaultTheme()

	img, err := RenderImage(board.Position{}, Options{Size: size})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		t.Fatalf("bounds = %v", b)
	}

	// d4 is dark, e4 is light. Sample away from the coordinate labels.
	tests := []struct {
		sq   board.Square
		want color.RGBA
	}{
		{board.D4, th.DarkSquare},
		{board.E4, th.LightSquare},
		{board.H8, th.LightSquare},
	}
	for _, tc := range tests {
		x, y := squareXY(tc.sq, cell)
		got := img.RGBAAt(x+cell-3, y+cell-3)
		if !near(got, tc.want) {
			t.Errorf("%v pixel = %v, want %v", tc.sq, got, tc.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	pos := board.InitialPosition()
	var buf bytes.Buffer
	err := WritePNG(&buf, pos, Options{
		Size:    256,
		Attacks: pos.AttackMap(board.White),
	})
	if err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Errorf("bounds = %v", b)
	}
}
