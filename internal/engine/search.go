package engine

import (
	"github.com/hailam/chessplay/internal/board"
)

// Search runs a fixed-depth minimax from pos and returns the chosen move and
// its score. White maximises and black minimises. At depth 0, or when the
// side to move has no legal moves, it returns NoMove and Evaluate(pos).
//
// When a move scores exactly the same as the current best, a fair coin
// decides whether it replaces the best move, so later ties are not sampled
// uniformly. The position is restored before Search returns.
func (e *Engine) Search(pos *board.Position, depth int) (board.Move, int) {
	e.nodes = 0
	return e.minimax(pos, depth)
}

func (e *Engine) minimax(pos *board.Position, depth int) (board.Move, int) {
	e.nodes++

	if depth == 0 {
		return board.NoMove, Evaluate(pos)
	}

	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NoMove, Evaluate(pos)
	}

	maximizing := pos.SideToMove() == board.White
	best := board.NoMove
	bestScore := 0

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		_, score := e.minimax(pos, depth-1)
		pos.UnmakeMove()

		switch {
		case best == board.NoMove:
			best, bestScore = m, score
		case score == bestScore:
			if e.flip() {
				best = m
			}
		case maximizing && score > bestScore, !maximizing && score < bestScore:
			best, bestScore = m, score
		}
	}

	return best, bestScore
}
