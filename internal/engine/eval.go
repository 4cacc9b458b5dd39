// Package engine implements fixed-depth minimax search over a board.Position
// with a material evaluator.
package engine

import (
	"github.com/hailam/chessplay/internal/board"
)

// MateScore is the evaluation of a checkmate, positive when black is mated.
const MateScore = 100

// Evaluation constants
const (
	PawnValue   = 1
	KnightValue = 3
	BishopValue = 3
	RookValue   = 5
	QueenValue  = 9
	KingValue   = 0
)

// Piece values indexed by board.PieceKind.
var pieceValues = [7]int{
	board.King:   KingValue,
	board.Queen:  QueenValue,
	board.Bishop: BishopValue,
	board.Knight: KnightValue,
	board.Rook:   RookValue,
	board.Pawn:   PawnValue,
}

// Evaluate scores the position from white's point of view: ±MateScore for
// checkmate, 0 for a draw, otherwise white material minus black material.
func Evaluate(pos *board.Position) int {
	if pos.IsCheckmate() {
		if pos.SideToMove() == board.White {
			return -MateScore
		}
		return MateScore
	}
	if pos.IsDraw() {
		return 0
	}
	return Material(pos)
}

// Material returns white material minus black material.
func Material(pos *board.Position) int {
	score := 0
	for sq := board.A1; sq < board.NoSquare; sq++ {
		pc := pos.PieceAt(sq)
		if pc == board.Empty {
			continue
		}
		v := pieceValues[pc.Kind()]
		if pc.Color() == board.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
