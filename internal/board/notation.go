package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalMove is returned when a move string does not name a legal move.
var ErrIllegalMove = errors.New("illegal move")

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
// Castles are written as the king's move.
func (m Move) String() string {
	if m.Kind == NoMoveKind {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promo.Char())
	}
	return s
}

// ParseMove resolves a coordinate move string against the legal moves.
func (p *Position) ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}

	promo := NoKind
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NoMove, fmt.Errorf("%w: promotion piece %q", ErrIllegalMove, s[4])
		}
	}

	for _, m := range p.LegalMoves().Slice() {
		if m.From == from && m.To == to && m.Promo == promo {
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}
