package render

import (
	"fmt"
	"image/color"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Theme defines the color scheme for the board.
type Theme struct {
	Name        string
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	LastMove    color.RGBA // blended over the square
	Check       color.RGBA // blended over the checked king's square
	WhitePiece  color.RGBA
	BlackPiece  color.RGBA
	Outline     color.RGBA
}

var themes = map[string]Theme{
	"classic": {
		Name:        "classic",
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		LastMove:    color.RGBA{205, 210, 106, 128},
		Check:       color.RGBA{255, 100, 100, 180},
		WhitePiece:  color.RGBA{255, 255, 255, 255},
		BlackPiece:  color.RGBA{48, 48, 48, 255},
		Outline:     color.RGBA{0, 0, 0, 255},
	},
	"green": {
		Name:        "green",
		LightSquare: color.RGBA{238, 238, 210, 255},
		DarkSquare:  color.RGBA{118, 150, 86, 255},
		LastMove:    color.RGBA{246, 246, 105, 128},
		Check:       color.RGBA{255, 100, 100, 180},
		WhitePiece:  color.RGBA{255, 255, 255, 255},
		BlackPiece:  color.RGBA{48, 48, 48, 255},
		Outline:     color.RGBA{0, 0, 0, 255},
	},
	"blue": {
		Name:        "blue",
		LightSquare: color.RGBA{222, 227, 230, 255},
		DarkSquare:  color.RGBA{140, 162, 173, 255},
		LastMove:    color.RGBA{130, 151, 105, 128},
		Check:       color.RGBA{255, 100, 100, 180},
		WhitePiece:  color.RGBA{255, 255, 255, 255},
		BlackPiece:  color.RGBA{40, 44, 52, 255},
		Outline:     color.RGBA{0, 0, 0, 255},
	},
}

// ThemeByName returns the named theme.
func ThemeByName(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := maps.Keys(themes)
	slices.Sort(names)
	return names
}

// blend draws over on top of base using over's alpha and returns an opaque color.
func blend(base, over color.RGBA) color.RGBA {
	a := uint32(over.A)
	mix := func(b, o uint8) uint8 {
		return uint8((uint32(b)*(255-a) + uint32(o)*a) / 255)
	}
	return color.RGBA{mix(base.R, over.R), mix(base.G, over.G), mix(base.B, over.B), 255}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
