package board

// generator emits the pseudo-legal moves of the piece on from.
type generator func(p *Position, ml *MoveList, from Square, us Color)

// generators is indexed by PieceKind.
var generators = [7]generator{
	NoKind: nil,
	King:   genKing,
	Queen:  genQueen,
	Bishop: genBishop,
	Knight: genKnight,
	Rook:   genRook,
	Pawn:   genPawn,
}

// castle describes one of the four castle moves.
type castle struct {
	right    CastlingRights
	color    Color
	side     CastleSide
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	between  []Square
}

var castles = [4]castle{
	{WhiteKingSideCastle, White, KingSide, E1, G1, H1, F1, []Square{F1, G1}},
	{WhiteQueenSideCastle, White, QueenSide, E1, C1, A1, D1, []Square{B1, C1, D1}},
	{BlackKingSideCastle, Black, KingSide, E8, G8, H8, F8, []Square{F8, G8}},
	{BlackQueenSideCastle, Black, QueenSide, E8, C8, A8, D8, []Square{B8, C8, D8}},
}

// castleFor returns the castle entry for a color and side.
func castleFor(c Color, side CastleSide) *castle {
	return &castles[2*int(c)+int(side)]
}

// GenerateCandidates generates all pseudo-legal moves for the side to move.
// Candidates may leave the mover's own king attacked.
func (p *Position) GenerateCandidates() *MoveList {
	ml := NewMoveList()
	us := p.sideToMove
	for sq := A1; sq < NoSquare; sq++ {
		pc := p.board[sq]
		if pc == Empty || pc.Color() != us {
			continue
		}
		generators[pc.Kind()](p, ml, sq, us)
	}
	return ml
}

// walk emits moves from from along d up to maxDist squares, stopping at
// the first occupied square and capturing it if it is an enemy.
func (p *Position) walk(ml *MoveList, from Square, d direction, maxDist int, us Color) {
	for dist := 1; dist <= maxDist; dist++ {
		to, ok := step(from, d, dist)
		if !ok {
			return
		}
		pc := p.board[to]
		if pc == Empty {
			ml.Add(Move{Kind: Quiet, From: from, To: to})
			continue
		}
		if pc.Color() != us {
			ml.Add(Move{Kind: Capture, From: from, To: to, Captured: pc})
		}
		return
	}
}

func genQueen(p *Position, ml *MoveList, from Square, us Color) {
	for _, d := range allDirs {
		p.walk(ml, from, d, 7, us)
	}
}

func genBishop(p *Position, ml *MoveList, from Square, us Color) {
	for _, d := range diagonals {
		p.walk(ml, from, d, 7, us)
	}
}

func genRook(p *Position, ml *MoveList, from Square, us Color) {
	for _, d := range orthogonals {
		p.walk(ml, from, d, 7, us)
	}
}

func genKnight(p *Position, ml *MoveList, from Square, us Color) {
	for _, j := range knightJumps {
		p.walk(ml, from, j, 1, us)
	}
}

// genKing emits single steps and castles. Castling only checks the right,
// the king and rook home squares and the emptiness of the squares between;
// attacked squares are not consulted.
func genKing(p *Position, ml *MoveList, from Square, us Color) {
	for _, d := range allDirs {
		p.walk(ml, from, d, 1, us)
	}

	king, rook := NewPiece(King, us), NewPiece(Rook, us)
	for i := range castles {
		c := &castles[i]
		if c.color != us || p.castlingRights&c.right == 0 {
			continue
		}
		if from != c.kingFrom || p.board[c.kingFrom] != king || p.board[c.rookFrom] != rook {
			continue
		}
		clear := true
		for _, sq := range c.between {
			if p.board[sq] != Empty {
				clear = false
				break
			}
		}
		if clear {
			ml.Add(Move{Kind: Castle, From: c.kingFrom, To: c.kingTo, Side: c.side})
		}
	}
}

// pawnDy returns the forward rank step for pawns of color c.
func pawnDy(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func genPawn(p *Position, ml *MoveList, from Square, us Color) {
	dy := pawnDy(us)
	startRank, lastRank := 1, 7
	if us == Black {
		startRank, lastRank = 6, 0
	}

	if one, ok := step(from, direction{0, dy}, 1); ok && p.board[one] == Empty {
		if one.Rank() == lastRank {
			for _, k := range PromotionKinds {
				ml.Add(Move{Kind: Promotion, From: from, To: one, Promo: k})
			}
		} else {
			ml.Add(Move{Kind: Quiet, From: from, To: one})
			if from.Rank() == startRank {
				if two, ok := step(from, direction{0, dy}, 2); ok && p.board[two] == Empty {
					ml.Add(Move{Kind: DoublePawnPush, From: from, To: two})
				}
			}
		}
	}

	for _, dx := range [2]int{-1, 1} {
		to, ok := step(from, direction{dx, dy}, 1)
		if !ok {
			continue
		}
		pc := p.board[to]
		switch {
		case pc != Empty && pc.Color() != us:
			if to.Rank() == lastRank {
				for _, k := range PromotionKinds {
					ml.Add(Move{Kind: PromotionCapture, From: from, To: to, Promo: k, Captured: pc})
				}
			} else {
				ml.Add(Move{Kind: Capture, From: from, To: to, Captured: pc})
			}
		case pc == Empty && to == p.enPassant:
			ml.Add(Move{Kind: EnPassant, From: from, To: to, Captured: NewPiece(Pawn, us.Other())})
		}
	}
}
