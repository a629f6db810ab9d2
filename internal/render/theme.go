// Package render draws positions and attack sets as SVG and PNG diagrams.
package render

import (
	"fmt"
	"image/color"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare  color.RGBA
	DarkSquare   color.RGBA
	OriginSquare color.RGBA
	AttackColor  color.RGBA
	CaptureColor color.RGBA
	WhitePiece   color.RGBA
	BlackPiece   color.RGBA
	TextColor    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:  color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:   color.RGBA{181, 136, 99, 255},  // Brown
		OriginSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		AttackColor:  color.RGBA{130, 151, 105, 200}, // Green dots
		CaptureColor: color.RGBA{255, 100, 100, 180}, // Red ring
		WhitePiece:   color.RGBA{255, 255, 255, 255},
		BlackPiece:   color.RGBA{20, 20, 20, 255},
		TextColor:    color.RGBA{60, 60, 60, 255},
	}
}

// hex formats c as an SVG color.
func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// opacity returns the alpha channel as a 0..1 SVG opacity.
func opacity(c color.RGBA) string {
	return fmt.Sprintf("%.2f", float64(c.A)/255)
}
