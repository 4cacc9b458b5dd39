package board

// LegalMoves returns the candidates that do not leave the mover's king attacked.
func (p *Position) LegalMoves() *MoveList {
	candidates := p.GenerateCandidates()
	legal := NewMoveList()
	for _, m := range candidates.Slice() {
		if p.isLegal(m) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	candidates := p.GenerateCandidates()
	for _, m := range candidates.Slice() {
		if p.isLegal(m) {
			return true
		}
	}
	return false
}

// isLegal makes m, tests the mover's king and unmakes it.
func (p *Position) isLegal(m Move) bool {
	us := p.sideToMove
	p.MakeMove(m)
	ok := !p.isKingAttacked(us)
	p.UnmakeMove()
	return ok
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveDraw returns true once 100 half moves pass without a pawn move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfMoveClock >= 100
}

// IsRepetition always returns false; repetition is not tracked.
func (p *Position) IsRepetition() bool {
	return false
}

// IsDraw returns true for stalemate, the fifty-move rule or repetition.
func (p *Position) IsDraw() bool {
	return p.IsStalemate() || p.IsFiftyMoveDraw() || p.IsRepetition()
}

// Status describes whether the game is over and how.
type Status uint8

const (
	Ongoing Status = iota
	WhiteWins
	BlackWins
	Stalemate
	FiftyMoveDraw
)

// String returns a human readable status.
func (s Status) String() string {
	switch s {
	case WhiteWins:
		return "checkmate, white wins"
	case BlackWins:
		return "checkmate, black wins"
	case Stalemate:
		return "draw by stalemate"
	case FiftyMoveDraw:
		return "draw by fifty-move rule"
	default:
		return "ongoing"
	}
}

// IsTerminal returns true if the game is over.
func (s Status) IsTerminal() bool {
	return s != Ongoing
}

// Status classifies the position. Checkmate takes precedence over draws.
func (p *Position) Status() Status {
	hasMoves := p.HasLegalMoves()
	if !hasMoves {
		if p.InCheck() {
			if p.sideToMove == White {
				return BlackWins
			}
			return WhiteWins
		}
		return Stalemate
	}
	if p.IsFiftyMoveDraw() {
		return FiftyMoveDraw
	}
	return Ongoing
}
