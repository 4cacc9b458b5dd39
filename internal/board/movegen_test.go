package board

import (
	"sort"
	"strings"
	"testing"
)

// richFEN exercises castling both ways, en passant, promotion with and
// without capture, and pieces of every kind.
const richFEN = "r3k2r/2bp2P1/1pp1p1n1/pP2Pp1P/n2qP3/1B3N2/P1QP1PP1/R3K2R w KQkq a6 3 24"

func moveStrings(ml *MoveList) []string {
	out := make([]string, 0, ml.Len())
	for _, m := range ml.Slice() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func TestLegalMovesRichPosition(t *testing.T) {
	pos, err := ParseFEN(richFEN)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"a1b1", "a1c1", "a1d1",
		"e1c1", "e1d1", "e1f1", "e1g1", "e1e2",
		"h1f1", "h1g1", "h1h2", "h1h3", "h1h4",
		"a2a3", "d2d3", "g2g3", "g2g4", "e4f5", "b5a6", "b5c6", "h5g6", "h5h6",
		"c2b1", "c2c1", "c2d1", "c2b2", "c2c3", "c2d3", "c2c4", "c2c5", "c2c6",
		"b3a4", "b3c4", "b3d5", "b3e6",
		"f3g1", "f3h2", "f3d4", "f3h4", "f3g5",
		"g7g8q", "g7g8r", "g7g8b", "g7g8n",
		"g7h8q", "g7h8r", "g7h8b", "g7h8n",
	}
	sort.Strings(want)

	legal := pos.LegalMoves()
	got := moveStrings(legal)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("legal moves (%d):\n got  %v\n want %v", len(got), got, want)
	}
	if legal.Len() != 48 {
		t.Errorf("legal move count = %d, want 48", legal.Len())
	}
	if n := pos.GenerateCandidates().Len(); n != 48 {
		t.Errorf("candidate count = %d, want 48", n)
	}

	kinds := map[string]MoveKind{
		"e1g1":  Castle,
		"e1c1":  Castle,
		"b5a6":  EnPassant,
		"g2g4":  DoublePawnPush,
		"g7g8q": Promotion,
		"g7h8n": PromotionCapture,
		"c2c6":  Capture,
		"a2a3":  Quiet,
	}
	for _, m := range legal.Slice() {
		if k, ok := kinds[m.String()]; ok && m.Kind != k {
			t.Errorf("%v kind = %v, want %v", m, m.Kind, k)
		}
	}
}

func TestCandidateCapturedPieceMatchesBoard(t *testing.T) {
	pos, err := ParseFEN(richFEN)
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range pos.GenerateCandidates().Slice() {
		switch m.Kind {
		case Capture, PromotionCapture:
			if m.Captured != pos.PieceAt(m.To) {
				t.Errorf("%v captured = %v, board has %v", m, m.Captured, pos.PieceAt(m.To))
			}
		case EnPassant:
			if m.Captured != BlackPawn {
				t.Errorf("%v captured = %v, want black pawn", m, m.Captured)
			}
		default:
			if m.Captured != Empty {
				t.Errorf("%v should not carry a captured piece", m)
			}
		}
	}
}

func TestSingleLegalMove(t *testing.T) {
	tests := []struct {
		fen  string
		move string
	}{
		{"k7/8/2K5/8/8/8/8/1R6 b - - 0 1", "a8a7"},
		{"7k/8/5K2/8/8/8/8/6R1 b - - 0 1", "h8h7"},
		{"k7/2K5/8/8/8/8/8/1R6 b - - 0 1", "a8a7"},
		{"7k/5K2/8/8/8/8/8/6Q1 b - - 0 1", "h8h7"},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			got := moveStrings(pos.LegalMoves())
			if len(got) != 1 || got[0] != tc.move {
				t.Errorf("legal moves = %v, want [%s]", got, tc.move)
			}
		})
	}
}

func TestCastlingIgnoresAttackedSquares(t *testing.T) {
	// The bishop covers f1 and the rook on e8 gives check. Castling is
	// still generated and kept.
	pos, err := ParseFEN("4r1k1/8/8/8/8/7b/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.InCheck() {
		t.Fatal("expected check")
	}
	if _, err := pos.ParseMove("e1g1"); err != nil {
		t.Errorf("castle should be legal: %v", err)
	}
}

func TestCastlingNeedsEmptySquares(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range pos.GenerateCandidates().Slice() {
		if m.Kind == Castle {
			t.Errorf("unexpected castle %v", m)
		}
	}
}

func TestCastlingNeedsRookAtHome(t *testing.T) {
	// Rights claim both sides but the a1 rook is gone.
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var castles []string
	for _, m := range pos.GenerateCandidates().Slice() {
		if m.Kind == Castle {
			castles = append(castles, m.String())
		}
	}
	if strings.Join(castles, " ") != "e1g1" {
		t.Errorf("castles = %v, want [e1g1]", castles)
	}
}

func TestNoMovesForSideWithoutPieces(t *testing.T) {
	pos, err := ParseFEN("")
	if err != nil {
		t.Fatal(err)
	}
	if n := pos.GenerateCandidates().Len(); n != 0 {
		t.Errorf("empty board candidates = %d", n)
	}
	if pos.InCheck() {
		t.Error("a side without a king is never in check")
	}
}

func TestKnightDoesNotWrap(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/7N/N7/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var knightMoves []string
	for _, m := range pos.GenerateCandidates().Slice() {
		if pos.PieceAt(m.From) == WhiteKnight {
			knightMoves = append(knightMoves, m.String())
		}
	}
	sort.Strings(knightMoves)
	want := []string{"a4b2", "a4b6", "a4c3", "a4c5", "h5f4", "h5f6", "h5g3", "h5g7"}
	if strings.Join(knightMoves, " ") != strings.Join(want, " ") {
		t.Errorf("knight moves = %v, want %v", knightMoves, want)
	}
}

func TestCrowdedPositionGrowsMoveList(t *testing.T) {
	// 23 white queens: more candidates than any reachable position has.
	fen := "QQ5Q/n2QQQ1n/Q5QQ/Q1Q4Q/Q6Q/Q6Q/Q6Q/KQpQQQQk w - - 0 1"
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}

	candidates := pos.GenerateCandidates()
	if candidates.Len() <= 256 {
		t.Errorf("candidate count = %d, want more than 256", candidates.Len())
	}
	legal := pos.LegalMoves()
	if legal.Len() == 0 || legal.Len() > candidates.Len() {
		t.Errorf("legal count = %d of %d candidates", legal.Len(), candidates.Len())
	}
	for _, m := range legal.Slice() {
		if !candidates.Contains(m) {
			t.Errorf("legal move %v not among candidates", m)
		}
		pos.MakeMove(m)
		pos.UnmakeMove()
	}
	if got := pos.ToFEN(); got != fen {
		t.Errorf("position changed: %s", got)
	}
}
