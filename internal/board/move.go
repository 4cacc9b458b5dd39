package board

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	NoMoveKind MoveKind = iota
	Quiet
	Capture
	DoublePawnPush
	EnPassant
	Castle
	Promotion
	PromotionCapture
)

// String returns the kind name.
func (k MoveKind) String() string {
	switch k {
	case Quiet:
		return "Quiet"
	case Capture:
		return "Capture"
	case DoublePawnPush:
		return "DoublePawnPush"
	case EnPassant:
		return "EnPassant"
	case Castle:
		return "Castle"
	case Promotion:
		return "Promotion"
	case PromotionCapture:
		return "PromotionCapture"
	default:
		return "NoMove"
	}
}

// CastleSide identifies which rook a castle move uses.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// Move is a self-describing move. Kind selects which payload fields apply:
//
//	Quiet, DoublePawnPush:  From, To
//	Capture, EnPassant:     From, To, Captured
//	Castle:                 From, To (king squares), Side
//	Promotion:              From, To, Promo
//	PromotionCapture:       From, To, Promo, Captured
//
// UnmakeMove needs nothing beyond the move and its history entry.
type Move struct {
	Kind     MoveKind
	From     Square
	To       Square
	Promo    PieceKind
	Captured Piece
	Side     CastleSide
}

// NoMove represents the absence of a move.
var NoMove = Move{}

// IsCapture returns true if the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Kind == Capture || m.Kind == EnPassant || m.Kind == PromotionCapture
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Kind == Promotion || m.Kind == PromotionCapture
}

// IsCastle returns true if the move is a castle.
func (m Move) IsCastle() bool {
	return m.Kind == Castle
}

// MoveList is a growable list of moves. Typical positions fit in the
// initial capacity; crowded FEN setups grow it.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 64)}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.moves = ml.moves[:0]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for _, x := range ml.moves {
		if x == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}
