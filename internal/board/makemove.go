package board

import "fmt"

// DebugMoveValidation makes precondition violations in MakeMove and
// UnmakeMove panic instead of being ignored.
var DebugMoveValidation = false

// rookHomeRights maps each rook home square to the right it guards.
var rookHomeRights = func() [64]CastlingRights {
	var r [64]CastlingRights
	for _, c := range castles {
		r[c.rookFrom] = c.right
	}
	return r
}()

// enPassantVictim returns the square of the pawn captured by an en passant
// move of color us landing on to.
func enPassantVictim(to Square, us Color) Square {
	return Square(int(to) - 8*pawnDy(us))
}

// MakeMove applies m for the side to move and pushes a history entry.
// The move is assumed to come from GenerateCandidates for this position.
func (p *Position) MakeMove(m Move) {
	us := p.sideToMove
	mover := p.board[m.From]
	if mover == Empty || mover.Color() != us {
		if DebugMoveValidation {
			panic(fmt.Sprintf("board: MakeMove %v: no %v piece on %v", m, us, m.From))
		}
		return
	}

	entry := HistoryEntry{
		Move:              m,
		PrevEnPassant:     p.enPassant,
		PrevHalfMoveClock: p.halfMoveClock,
	}
	p.enPassant = NoSquare

	if m.Kind == EnPassant {
		victim := enPassantVictim(m.To, us)
		entry.Captured = p.board[victim]
		p.board[victim] = Empty
	} else {
		entry.Captured = p.board[m.To]
	}

	p.board[m.To] = mover
	p.board[m.From] = Empty

	switch m.Kind {
	case Castle:
		c := castleFor(us, m.Side)
		p.board[c.rookTo] = p.board[c.rookFrom]
		p.board[c.rookFrom] = Empty
	case DoublePawnPush:
		p.enPassant = (m.From + m.To) / 2
	case Promotion, PromotionCapture:
		p.board[m.To] = NewPiece(m.Promo, us)
	}

	if mover.Kind() == Pawn || entry.Captured != Empty {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	var lost CastlingRights
	if mover.Kind() == King {
		lost |= castleRight(us, KingSide) | castleRight(us, QueenSide)
	}
	lost |= rookHomeRights[m.From] | rookHomeRights[m.To]
	lost &= p.castlingRights
	p.castlingRights &^= lost
	entry.LostRights = lost

	p.history = append(p.history, entry)
	ply := len(p.history)
	for r := WhiteKingSideCastle; r <= BlackQueenSideCastle; r <<= 1 {
		if lost&r != 0 {
			p.rightLostAt[rightIndex(r)] = ply
		}
	}

	p.sideToMove = us.Other()
	if us == Black {
		p.fullMoveNumber++
	}
}

// UnmakeMove reverts the most recent MakeMove exactly.
func (p *Position) UnmakeMove() {
	if len(p.history) == 0 {
		if DebugMoveValidation {
			panic("board: UnmakeMove with empty history")
		}
		return
	}

	entry := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	m := entry.Move

	p.sideToMove = p.sideToMove.Other()
	us := p.sideToMove
	if us == Black {
		p.fullMoveNumber--
	}

	piece := p.board[m.To]
	if m.IsPromotion() {
		piece = NewPiece(Pawn, us)
	}
	p.board[m.From] = piece

	if m.Kind == EnPassant {
		p.board[m.To] = Empty
		p.board[enPassantVictim(m.To, us)] = entry.Captured
	} else {
		p.board[m.To] = entry.Captured
	}

	if m.Kind == Castle {
		c := castleFor(us, m.Side)
		p.board[c.rookFrom] = p.board[c.rookTo]
		p.board[c.rookTo] = Empty
	}

	p.halfMoveClock = entry.PrevHalfMoveClock
	p.enPassant = entry.PrevEnPassant

	p.castlingRights |= entry.LostRights
	for r := WhiteKingSideCastle; r <= BlackQueenSideCastle; r <<= 1 {
		if entry.LostRights&r != 0 {
			p.rightLostAt[rightIndex(r)] = 0
		}
	}
}
