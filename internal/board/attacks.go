package board

// ray is a sliding direction and the piece kind, besides the queen, that
// moves along it.
type ray struct {
	dir    direction
	slider PieceKind
}

var (
	orthogonals = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonals   = [4]direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	allDirs     = [8]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	knightJumps = [8]direction{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}

	rays = [8]ray{
		{direction{1, 0}, Rook},
		{direction{-1, 0}, Rook},
		{direction{0, 1}, Rook},
		{direction{0, -1}, Rook},
		{direction{1, 1}, Bishop},
		{direction{-1, 1}, Bishop},
		{direction{1, -1}, Bishop},
		{direction{-1, -1}, Bishop},
	}
)

// pawnAttackDy returns the vertical step from an attacked square back
// towards a pawn of color c that attacks it.
func pawnAttackDy(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// IsAttacked reports whether any piece of color by attacks sq.
// The square itself may be empty or occupied by either side.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	for _, r := range rays {
		for dist := 1; ; dist++ {
			target, ok := step(sq, r.dir, dist)
			if !ok {
				break
			}
			pc := p.board[target]
			if pc == Empty {
				continue
			}
			if pc.Color() == by {
				switch pc.Kind() {
				case Queen:
					return true
				case King:
					if dist == 1 {
						return true
					}
				case Pawn:
					if dist == 1 && r.slider == Bishop && r.dir.dy == pawnAttackDy(by) {
						return true
					}
				default:
					if pc.Kind() == r.slider {
						return true
					}
				}
			}
			break
		}
	}

	knight := NewPiece(Knight, by)
	for _, j := range knightJumps {
		if target, ok := step(sq, j, 1); ok && p.board[target] == knight {
			return true
		}
	}

	return false
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.isKingAttacked(p.sideToMove)
}

// isKingAttacked reports whether the king of color c is attacked. A side
// without a king is never in check.
func (p *Position) isKingAttacked(c Color) bool {
	king := p.KingSquare(c)
	if king == NoSquare {
		return false
	}
	return p.IsAttacked(king, c.Other())
}
