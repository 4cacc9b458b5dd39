package board

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&castleRight(c, side) != 0
}

func castleRight(c Color, side CastleSide) CastlingRights {
	return WhiteKingSideCastle << (2*uint(c) + uint(side))
}

// rightIndex maps a single right to its slot in rightLostAt.
func rightIndex(r CastlingRights) int {
	switch r {
	case WhiteKingSideCastle:
		return 0
	case WhiteQueenSideCastle:
		return 1
	case BlackKingSideCastle:
		return 2
	default:
		return 3
	}
}

// HistoryEntry records what MakeMove needs to restore on UnmakeMove.
type HistoryEntry struct {
	Move              Move
	Captured          Piece
	PrevEnPassant     Square
	PrevHalfMoveClock int
	LostRights        CastlingRights
}

// Position represents a complete chess position on a 64-square mailbox.
// After construction only MakeMove and UnmakeMove change it.
type Position struct {
	board [64]Piece

	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square // Target square for en passant, NoSquare if none
	halfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	fullMoveNumber int    // Full move counter, starts at 1

	history []HistoryEntry

	// Ply (history length) at which each right was lost, 0 while held.
	rightLostAt [4]int
}

// State is a comparable snapshot of everything observable about a Position.
type State struct {
	Board          [64]Piece
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Ply            int
	RightLostAt    [4]int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// NewEmptyPosition returns an empty board with white to move.
func NewEmptyPosition() *Position {
	return &Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
}

// PieceAt returns the piece on the given square.
func (p *Position) PieceAt(sq Square) Piece {
	if sq >= NoSquare {
		return Empty
	}
	return p.board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == Empty
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the rights still held.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassant returns the en passant target square or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfMoveClock returns the number of half moves since the last pawn move or capture.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Ply returns the number of moves made on this position.
func (p *Position) Ply() int { return len(p.history) }

// LastMove returns the most recently made move, or NoMove.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].Move
}

// History returns a copy of the history stack, oldest first.
func (p *Position) History() []HistoryEntry {
	return slices.Clone(p.history)
}

// RightLostAt returns the ply at which a single castling right was lost,
// or 0 if it is still held or was never held since construction.
func (p *Position) RightLostAt(r CastlingRights) int {
	return p.rightLostAt[rightIndex(r)]
}

// KingSquare returns the square of the king of color c, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq < NoSquare; sq++ {
		if p.board[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// State returns a comparable snapshot of the position.
func (p *Position) State() State {
	return State{
		Board:          p.board,
		SideToMove:     p.sideToMove,
		CastlingRights: p.castlingRights,
		EnPassant:      p.enPassant,
		HalfMoveClock:  p.halfMoveClock,
		FullMoveNumber: p.fullMoveNumber,
		Ply:            len(p.history),
		RightLostAt:    p.rightLostAt,
	}
}

// Copy returns a deep copy of the position, history included.
func (p *Position) Copy() *Position {
	c := *p
	c.history = slices.Clone(p.history)
	return &c
}

// Material returns the count of each piece code on the board.
func (p *Position) Material() [13]int {
	var counts [13]int
	for _, pc := range p.board {
		counts[pc]++
	}
	return counts
}

// String returns an ASCII representation of the board.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == Empty {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMoveNumber)
	return sb.String()
}
