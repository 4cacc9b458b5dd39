package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN is returned for malformed FEN strings.
var ErrInvalidFEN = errors.New("invalid FEN")

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
// An empty string yields an empty board with white to move.
func ParseFEN(fen string) (*Position, error) {
	if strings.TrimSpace(fen) == "" {
		return NewEmptyPosition(), nil
	}

	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: need 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := NewEmptyPosition()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, parts[3])
		}
		pos.enPassant = sq
	}

	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, parts[4])
	}
	pos.halfMoveClock = hmc

	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, parts[5])
	}
	pos.fullMoveNumber = fmn

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == Empty {
				return fmt.Errorf("%w: piece character %q", ErrInvalidFEN, c)
			}
			pos.board[NewSquare(file, rank)] = piece
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.castlingRights = NoCastling
		return nil
	}

	for i := 0; i < len(castling); i++ {
		var r CastlingRights
		switch castling[i] {
		case 'K':
			r = WhiteKingSideCastle
		case 'Q':
			r = WhiteQueenSideCastle
		case 'k':
			r = BlackKingSideCastle
		case 'q':
			r = BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: castling character %q", ErrInvalidFEN, castling[i])
		}
		if pos.castlingRights&r != 0 {
			return fmt.Errorf("%w: repeated castling right %q", ErrInvalidFEN, castling[i])
		}
		pos.castlingRights |= r
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
