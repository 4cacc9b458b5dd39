// Package board implements the chess position model on a 64-square mailbox:
// pseudo-legal move generation, attack detection, make/unmake and the
// legality filter built on top of them.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when algebraic square notation cannot be parsed.
var ErrInvalidSquare = errors.New("invalid square")

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) % 8
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) / 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(file + 8*rank)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(file, rank), nil
}

// direction is a (file, rank) step on the board.
type direction struct {
	dx, dy int
}

// step returns the square dist steps away from sq along d. The index
// arithmetic wraps across rank boundaries, so any target whose file moved
// against the horizontal component of d is rejected along with targets
// outside 0-63.
func step(sq Square, d direction, dist int) (Square, bool) {
	target := int(sq) + dist*d.dx + 8*dist*d.dy
	if target < 0 || target > 63 {
		return NoSquare, false
	}

	file, targetFile := int(sq)%8, target%8
	if d.dx < 0 && targetFile > file {
		return NoSquare, false
	}
	if d.dx > 0 && targetFile < file {
		return NoSquare, false
	}

	return Square(target), true
}
