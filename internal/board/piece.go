package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceKind represents the type of a chess piece regardless of color.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	King
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Rook:
		return "Rook"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the lowercase FEN letter for the kind.
func (k PieceKind) Char() byte {
	if k > Pawn {
		return ' '
	}
	return " kqbnrp"[k]
}

// PromotionKinds lists the kinds a pawn may promote to, strongest first.
var PromotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// Piece is a small integer code: 0 is an empty square, 1-6 are the white
// King, Queen, Bishop, Knight, Rook and Pawn, 7-12 the black ones.
type Piece uint8

const (
	Empty       Piece = 0
	WhiteKing   Piece = 1
	WhiteQueen  Piece = 2
	WhiteBishop Piece = 3
	WhiteKnight Piece = 4
	WhiteRook   Piece = 5
	WhitePawn   Piece = 6
	BlackKing   Piece = 7
	BlackQueen  Piece = 8
	BlackBishop Piece = 9
	BlackKnight Piece = 10
	BlackRook   Piece = 11
	BlackPawn   Piece = 12
)

// NewPiece creates a Piece from a kind and a color.
func NewPiece(k PieceKind, c Color) Piece {
	if k == NoKind || k > Pawn || c >= NoColor {
		return Empty
	}
	return Piece(k) + Piece(c)*6
}

// Kind returns the PieceKind of the piece.
func (p Piece) Kind() PieceKind {
	if p == Empty || p > BlackPawn {
		return NoKind
	}
	return PieceKind((p-1)%6 + 1)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	switch {
	case p == Empty || p > BlackPawn:
		return NoColor
	case p <= WhitePawn:
		return White
	default:
		return Black
	}
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p > BlackPawn {
		return " "
	}
	return string(" KQBNRPkqbnrp"[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'K':
		return WhiteKing
	case 'Q':
		return WhiteQueen
	case 'B':
		return WhiteBishop
	case 'N':
		return WhiteKnight
	case 'R':
		return WhiteRook
	case 'P':
		return WhitePawn
	case 'k':
		return BlackKing
	case 'q':
		return BlackQueen
	case 'b':
		return BlackBishop
	case 'n':
		return BlackKnight
	case 'r':
		return BlackRook
	case 'p':
		return BlackPawn
	default:
		return Empty
	}
}
