// Package render draws positions as SVG documents and PNG images.
//
// The board is always built as SVG with svgo. PNG output rasterizes that
// document with oksvg at a higher resolution and scales it down, so both
// formats show the same picture.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessplay/internal/board"
)

const (
	MinSize     = 160
	MaxSize     = 2048
	DefaultSize = 480

	// Rasterize at 3x and scale down for smooth edges.
	renderScale = 3
)

var (
	ErrInvalidSize   = errors.New("invalid board size")
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownFormat = errors.New("unknown image format")
)

// Options controls how a board is drawn.
type Options struct {
	Size        int    // board edge in pixels, rounded down to a multiple of 8
	Theme       string // see ThemeNames
	Flip        bool   // draw from black's side
	Coordinates bool
	Highlight   bool // last move and checked king
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Size:        DefaultSize,
		Theme:       "classic",
		Coordinates: true,
		Highlight:   true,
	}
}

// Renderer draws positions with fixed options.
type Renderer struct {
	opts   Options
	theme  Theme
	square int
}

// NewRenderer validates opts and creates a renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Size < MinSize || opts.Size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, opts.Size, MinSize, MaxSize)
	}
	if opts.Theme == "" {
		opts.Theme = "classic"
	}
	theme, err := ThemeByName(opts.Theme)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, theme: theme, square: opts.Size / 8}, nil
}

// BoardSize returns the board edge in pixels.
func (r *Renderer) BoardSize() int {
	return r.square * 8
}

// SquareToScreen returns the top-left pixel of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return r.squareOrigin(sq, r.square)
}

// ScreenToSquare converts pixel coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.BoardSize() || y < 0 || y >= r.BoardSize() {
		return board.NoSquare
	}
	file, rank := x/r.square, 7-y/r.square
	if r.opts.Flip {
		file, rank = 7-file, 7-rank
	}
	return board.NewSquare(file, rank)
}

func (r *Renderer) squareOrigin(sq board.Square, size int) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if r.opts.Flip {
		return (7 - file) * size, rank * size
	}
	return file * size, (7 - rank) * size
}

// squareColor returns the fill of sq after highlights.
func (r *Renderer) squareColor(pos *board.Position, sq board.Square) color.RGBA {
	c := r.theme.LightSquare
	if isDark(sq) {
		c = r.theme.DarkSquare
	}
	if !r.opts.Highlight {
		return c
	}

	if last := pos.LastMove(); last != board.NoMove && (sq == last.From || sq == last.To) {
		c = blend(c, r.theme.LastMove)
	}
	if pos.InCheck() && sq == pos.KingSquare(pos.SideToMove()) {
		c = blend(c, r.theme.Check)
	}
	return c
}

func isDark(sq board.Square) bool {
	return (sq.File()+sq.Rank())%2 == 0
}

// WriteSVG writes pos as an SVG document.
func (r *Renderer) WriteSVG(w io.Writer, pos *board.Position) error {
	return r.writeSVG(w, pos, r.square, true)
}

func (r *Renderer) writeSVG(w io.Writer, pos *board.Position, square int, vector bool) error {
	ew := &errWriter{w: w}
	edge := square * 8

	canvas := svg.New(ew)
	canvas.Startview(edge, edge, 0, 0, edge, edge)
	if vector {
		canvas.Title(pos.ToFEN())
	}

	canvas.Gid("squares")
	for sq := board.A1; sq < board.NoSquare; sq++ {
		x, y := r.squareOrigin(sq, square)
		canvas.Rect(x, y, square, square, "fill:"+hex(r.squareColor(pos, sq)))
	}
	canvas.Gend()

	if vector && r.opts.Coordinates {
		r.svgLabels(canvas, square)
	}

	canvas.Gid("pieces")
	for sq := board.A1; sq < board.NoSquare; sq++ {
		p := pos.PieceAt(sq)
		if p == board.Empty {
			continue
		}
		x, y := r.squareOrigin(sq, square)
		drawPiece(canvas, r.theme, p, sq, x, y, square)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

// labelSquares returns the squares carrying file letters and rank numbers.
func (r *Renderer) labelSquares() (files, ranks [8]board.Square) {
	bottom, left := 0, 0
	if r.opts.Flip {
		bottom, left = 7, 7
	}
	for i := 0; i < 8; i++ {
		files[i] = board.NewSquare(i, bottom)
		ranks[i] = board.NewSquare(left, i)
	}
	return files, ranks
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if isDark(sq) {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

func (r *Renderer) svgLabels(canvas *svg.SVG, square int) {
	fontSize := square / 6
	if fontSize < 8 {
		fontSize = 8
	}
	files, ranks := r.labelSquares()

	canvas.Gid("coordinates")
	for i, sq := range files {
		x, y := r.squareOrigin(sq, square)
		canvas.Text(x+square-square/16, y+square-square/16, string(rune('a'+i)),
			fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:end;fill:%s", fontSize, hex(r.labelColor(sq))))
	}
	for i, sq := range ranks {
		x, y := r.squareOrigin(sq, square)
		canvas.Text(x+square/16, y+fontSize+square/32, string(rune('1'+i)),
			fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", fontSize, hex(r.labelColor(sq))))
	}
	canvas.Gend()
}

// Image rasterizes pos.
func (r *Renderer) Image(pos *board.Position) (*image.RGBA, error) {
	hi := r.BoardSize() * renderScale

	var buf bytes.Buffer
	if err := r.writeSVG(&buf, pos, r.square*renderScale, false); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(hi), float64(hi))

	src := image.NewRGBA(image.Rect(0, 0, hi, hi))
	scanner := rasterx.NewScannerGV(hi, hi, src, src.Bounds())
	raster := rasterx.NewDasher(hi, hi, scanner)
	icon.Draw(raster, 1.0)

	dst := image.NewRGBA(image.Rect(0, 0, r.BoardSize(), r.BoardSize()))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if r.opts.Coordinates {
		if err := r.drawLabels(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (r *Renderer) drawLabels(img *image.RGBA) error {
	size := float64(r.square) / 6
	if size < 8 {
		size = 8
	}
	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}
	face, err := opentype.NewFace(ttf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}
	defer face.Close()

	pad := r.square / 16
	files, ranks := r.labelSquares()
	for i, sq := range files {
		label := string(rune('a' + i))
		x, y := r.SquareToScreen(sq)
		width := font.MeasureString(face, label).Ceil()
		r.drawText(img, face, label, x+r.square-pad-width, y+r.square-pad, r.labelColor(sq))
	}
	for i, sq := range ranks {
		x, y := r.SquareToScreen(sq)
		r.drawText(img, face, string(rune('1'+i)), x+pad, y+pad+face.Metrics().Ascent.Ceil(), r.labelColor(sq))
	}
	return nil
}

func (r *Renderer) drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WritePNG writes pos as a PNG image.
func (r *Renderer) WritePNG(w io.Writer, pos *board.Position) error {
	img, err := r.Image(pos)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteFile writes pos to path, choosing SVG or PNG from the extension.
func WriteFile(path string, pos *board.Position, opts Options) error {
	r, err := NewRenderer(opts)
	if err != nil {
		return err
	}

	var write func(io.Writer, *board.Position) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		write = r.WriteSVG
	case ".png":
		write = r.WritePNG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, pos); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
