package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a legal move to Standard Algebraic Notation.
// The position is used for disambiguation and check markers and is left unchanged.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == Empty {
		return m.String()
	}

	var sb strings.Builder

	if m.Kind == Castle {
		if m.Side == KingSide {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		kind := piece.Kind()
		if kind != Pawn {
			sb.WriteByte(kind.Char() - 'a' + 'A')
			sb.WriteString(disambiguation(pos, m, kind))
		}

		if m.IsCapture() {
			if kind == Pawn {
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(m.To.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promo.Char() - 'a' + 'A')
		}
	}

	pos.MakeMove(m)
	if pos.IsCheckmate() {
		sb.WriteByte('#')
	} else if pos.InCheck() {
		sb.WriteByte('+')
	}
	pos.UnmakeMove()

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when another
// piece of the same kind can reach the same destination.
func disambiguation(pos *Position, m Move, kind PieceKind) string {
	var candidates []Square
	for _, other := range pos.LegalMoves().Slice() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if pos.PieceAt(other.From).Kind() == kind {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN resolves a SAN string against the legal moves of the position.
func (p *Position) ParseSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	legal := p.LegalMoves().Slice()

	switch s {
	case "O-O", "0-0":
		return findCastle(legal, KingSide, orig)
	case "O-O-O", "0-0-0":
		return findCastle(legal, QueenSide, orig)
	}

	promo := NoKind
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
		}
		promo = promotionFromChar(s[idx+1])
		if promo == NoKind {
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	kind := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		kind = PieceFromChar(s[0]).Kind()
		if kind == NoKind || kind == Pawn {
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
	}
	s = s[:len(s)-2]

	file, rank := -1, -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
		}
	}

	for _, m := range legal {
		if m.To != dest || m.Kind == Castle {
			continue
		}
		if p.PieceAt(m.From).Kind() != kind {
			continue
		}
		if file >= 0 && m.From.File() != file {
			continue
		}
		if rank >= 0 && m.From.Rank() != rank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.Promo != promo {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
}

func findCastle(legal []Move, side CastleSide, orig string) (Move, error) {
	for _, m := range legal {
		if m.Kind == Castle && m.Side == side {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
}

func promotionFromChar(c byte) PieceKind {
	switch c {
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	default:
		return NoKind
	}
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
// The position is restored before returning.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = m.ToSAN(pos)
		pos.MakeMove(m)
	}
	for range moves {
		pos.UnmakeMove()
	}
	return result
}
