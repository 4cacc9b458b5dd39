package board

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// isKingTwoStep reports whether a coordinate move string moves a king two
// files from its home square. Castling is filtered out of the comparison
// because attacked transit squares are not consulted here.
func isKingTwoStep(pos *Position, s string) bool {
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return false
	}
	to, _ := ParseSquare(s[2:4])
	return pos.PieceAt(from).Kind() == King && abs(from.File()-to.File()) == 2
}

func oracleMoves(b *dragontoothmg.Board) map[string]dragontoothmg.Move {
	out := make(map[string]dragontoothmg.Move)
	for _, m := range b.GenerateLegalMoves() {
		mv := m
		out[strings.ToLower(mv.String())] = mv
	}
	return out
}

func nonCastles(pos *Position, moves []string) []string {
	var out []string
	for _, s := range moves {
		if !isKingTwoStep(pos, s) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// TestLegalMovesAgainstOracle walks random games and compares the legal
// move set against an independent bitboard generator at every ply.
func TestLegalMovesAgainstOracle(t *testing.T) {
	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	rng := rand.New(rand.NewSource(7))

	for _, fen := range starts {
		for game := 0; game < 8; game++ {
			pos := mustParse(t, fen)
			oracle := dragontoothmg.ParseFen(fen)

			for ply := 0; ply < 60; ply++ {
				ours := moveStrings(pos.LegalMoves())
				theirs := oracleMoves(&oracle)

				theirList := make([]string, 0, len(theirs))
				for s := range theirs {
					theirList = append(theirList, s)
				}

				a, b := nonCastles(pos, ours), nonCastles(pos, theirList)
				if strings.Join(a, " ") != strings.Join(b, " ") {
					t.Fatalf("%s after %d plies (%s):\n ours   %v\n oracle %v", fen, ply, pos.ToFEN(), a, b)
				}

				// Only moves both generators accept keep the boards in step.
				var shared []string
				for _, s := range ours {
					if _, ok := theirs[s]; ok {
						shared = append(shared, s)
					}
				}
				if len(shared) == 0 {
					break
				}

				s := shared[rng.Intn(len(shared))]
				pos.MakeMove(mustMove(t, pos, s))
				oracle.Apply(theirs[s])
			}
		}
	}
}
