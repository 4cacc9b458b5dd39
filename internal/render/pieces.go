package render

import (
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chessplay/internal/board"
)

// Piece silhouettes on a 100x100 grid, drawn as polygons and circles so the
// same document rasterizes through oksvg without fonts.

type point struct{ x, y int }

type circle struct{ x, y, r int }

type shape struct {
	polygons [][]point
	circles  []circle
}

var base = []point{{22, 78}, {78, 78}, {78, 90}, {22, 90}}

var shapes = map[board.PieceKind]shape{
	board.Pawn: {
		polygons: [][]point{
			{{38, 50}, {62, 50}, {70, 78}, {30, 78}},
			base,
		},
		circles: []circle{{50, 36, 13}},
	},
	board.Knight: {
		polygons: [][]point{
			{{30, 78}, {40, 56}, {29, 52}, {22, 42}, {38, 24}, {44, 12}, {52, 20}, {66, 28}, {73, 50}, {70, 78}},
			base,
		},
	},
	board.Bishop: {
		polygons: [][]point{
			{{50, 20}, {66, 42}, {58, 62}, {42, 62}, {34, 42}},
			{{40, 62}, {60, 62}, {66, 78}, {34, 78}},
			base,
		},
		circles: []circle{{50, 14, 6}},
	},
	board.Rook: {
		polygons: [][]point{
			{
				{25, 15}, {35, 15}, {35, 25}, {45, 25}, {45, 15}, {55, 15}, {55, 25}, {65, 25}, {65, 15}, {75, 15},
				{75, 35}, {68, 40}, {68, 70}, {75, 78}, {25, 78}, {32, 70}, {32, 40}, {25, 35},
			},
			base,
		},
	},
	board.Queen: {
		polygons: [][]point{
			{{20, 30}, {32, 56}, {35, 20}, {50, 50}, {65, 20}, {68, 56}, {80, 30}, {70, 78}, {30, 78}},
			base,
		},
		circles: []circle{{20, 30, 5}, {35, 20, 5}, {65, 20, 5}, {80, 30, 5}},
	},
	board.King: {
		polygons: [][]point{
			{{46, 8}, {54, 8}, {54, 16}, {62, 16}, {62, 24}, {54, 24}, {54, 32}, {46, 32}, {46, 24}, {38, 24}, {38, 16}, {46, 16}},
			{{28, 40}, {72, 40}, {64, 78}, {36, 78}},
			base,
		},
	},
}

// drawPiece draws p standing on sq into the square whose top-left corner is (x, y).
func drawPiece(canvas *svg.SVG, theme Theme, p board.Piece, sq board.Square, x, y, size int) {
	sh, ok := shapes[p.Kind()]
	if !ok {
		return
	}

	fill := theme.WhitePiece
	if p.Color() == board.Black {
		fill = theme.BlackPiece
	}
	stroke := size / 40
	if stroke < 1 {
		stroke = 1
	}
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", hex(fill), hex(theme.Outline), stroke)

	scale := func(v int) int { return v * size / 100 }

	canvas.Gid("piece-" + sq.String())
	for _, poly := range sh.polygons {
		xs := make([]int, len(poly))
		ys := make([]int, len(poly))
		for i, pt := range poly {
			xs[i] = x + scale(pt.x)
			ys[i] = y + scale(pt.y)
		}
		canvas.Polygon(xs, ys, style)
	}
	for _, c := range sh.circles {
		canvas.Circle(x+scale(c.x), y+scale(c.y), scale(c.r), style)
	}
	canvas.Gend()
}
