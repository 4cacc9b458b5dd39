package engine

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func newTestEngine() *Engine {
	return New(Options{Rand: rand.New(rand.NewSource(1))})
}

func TestSearchDepthZero(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/2bp2P1/1pp1p1n1/pP2Pp1P/n2qP3/1B3N2/P1QP1PP1/R3K2R w KQkq a6 3 24",
		"8/8/8/6K1/8/3Q4/8/1Rk5 b - - 48 5",
	}

	for _, fen := range fens {
		pos := mustParse(t, fen)
		move, score := newTestEngine().Search(pos, 0)
		if move != board.NoMove {
			t.Errorf("%s: depth 0 returned move %v", fen, move)
		}
		if want := Evaluate(pos); score != want {
			t.Errorf("%s: depth 0 score = %d, want %d", fen, score, want)
		}
	}
}

func TestSearchSingleLegalMove(t *testing.T) {
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
		for depth := 1; depth <= 3; depth++ {
			pos := mustParse(t, tc.fen)
			move, _ := newTestEngine().Search(pos, depth)
			if move.String() != tc.move {
				t.Errorf("%s depth %d: got %v, want %s", tc.fen, depth, move, tc.move)
			}
		}
	}
}

func TestSearchFindsMate(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		score int
	}{
		{"white back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", MateScore},
		{"black back rank", "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1", -MateScore},
	}

	for _, tc := range tests {
		for depth := 1; depth <= 2; depth++ {
			t.Run(tc.name, func(t *testing.T) {
				pos := mustParse(t, tc.fen)
				move, score := newTestEngine().Search(pos, depth)
				if move.String() != tc.move || score != tc.score {
					t.Errorf("depth %d: got %v (%d), want %s (%d)", depth, move, score, tc.move, tc.score)
				}
			})
		}
	}
}

func TestSearchTieBreakCoin(t *testing.T) {
	// Every move from the start position scores 0 at depth 1.
	pos := board.NewPosition()
	legal := pos.LegalMoves().Slice()
	first, last := legal[0], legal[len(legal)-1]

	e := newTestEngine()
	e.flip = func() bool { return false }
	if move, score := e.Search(pos, 1); move != first || score != 0 {
		t.Errorf("never replacing: got %v (%d), want %v", move, score, first)
	}

	e.flip = func() bool { return true }
	if move, _ := e.Search(pos, 1); move != last {
		t.Errorf("always replacing: got %v, want %v", move, last)
	}

	flips := 0
	e.flip = func() bool { flips++; return false }
	e.Search(pos, 1)
	if flips != len(legal)-1 {
		t.Errorf("coin flipped %d times, want %d", flips, len(legal)-1)
	}
}

func TestSearchTieBreakIsNotUniform(t *testing.T) {
	// With k tied moves the last one wins with probability 1/2 and the first
	// with 1/2^(k-1), so the last move must dominate over many trials.
	pos := board.NewPosition()
	legal := pos.LegalMoves().Slice()
	last := legal[len(legal)-1]

	e := New(Options{Rand: rand.New(rand.NewSource(42))})
	hits := 0
	const trials = 400
	for i := 0; i < trials; i++ {
		if move, _ := e.Search(pos, 1); move == last {
			hits++
		}
	}
	if hits < trials/3 || hits > 2*trials/3 {
		t.Errorf("last move chosen %d/%d times, want about half", hits, trials)
	}
}

func TestSearchRestoresPosition(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := pos.State()
	newTestEngine().Search(pos, 2)
	if pos.State() != before {
		t.Error("search did not restore the position")
	}
}

func TestSearchNodes(t *testing.T) {
	e := newTestEngine()
	e.Search(board.NewPosition(), 1)
	if e.Nodes() != 21 {
		t.Errorf("nodes = %d, want 21", e.Nodes())
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"start", board.StartFEN, 0},
		{"material", "4k3/pppp4/8/8/8/8/8/QRBNK3 w - - 0 1", 16},
		{"black material", "qrbnk3/8/8/8/8/8/PP6/4K3 w - - 0 1", -18},
		{"black mated", "8/8/8/6K1/8/3Q4/8/1Rk5 b - - 48 5", MateScore},
		{"white mated", "8/8/8/8/8/5k2/6q1/7K w - - 0 1", -MateScore},
		{"stalemate", "7k/8/6Q1/8/8/8/8/K7 b - - 0 1", 0},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 90", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(mustParse(t, tc.fen)); got != tc.want {
				t.Errorf("Evaluate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestClampDepth(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, DefaultDepth},
		{-1, DefaultDepth},
		{0, 0},
		{4, 4},
		{10, 10},
		{11, MaxDepth},
		{99, MaxDepth},
	}
	for _, tc := range tests {
		if got := ClampDepth(tc.in); got != tc.want {
			t.Errorf("ClampDepth(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPlay(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e := New(Options{Logger: &logger, Rand: rand.New(rand.NewSource(3))})

	var infos []SearchInfo
	e.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	pos := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	info, err := e.Play(pos, 1)
	if err != nil {
		t.Fatal(err)
	}
	if info.Move.String() != "a1a8" || info.Score != MateScore {
		t.Errorf("Play = %v (%d)", info.Move, info.Score)
	}
	if pos.LastMove() != info.Move || pos.Status() != board.WhiteWins {
		t.Error("Play should make the move on the position")
	}
	if len(infos) != 1 || infos[0].Move != info.Move {
		t.Errorf("OnInfo calls = %v", infos)
	}
	if !strings.Contains(buf.String(), "computer move") || !strings.Contains(buf.String(), "a1a8") {
		t.Errorf("missing debug log: %q", buf.String())
	}

	if _, err := e.Play(pos, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("Play after mate err = %v, want ErrGameOver", err)
	}
}

func TestPlayDepthZero(t *testing.T) {
	pos := board.NewPosition()
	before := pos.State()
	if _, err := newTestEngine().Play(pos, 0); !errors.Is(err, ErrNoMove) {
		t.Errorf("err = %v, want ErrNoMove", err)
	}
	if pos.State() != before {
		t.Error("position changed")
	}
}

func TestPlayNegativeDepthUsesDefault(t *testing.T) {
	pos := mustParse(t, "k7/8/2K5/8/8/8/8/1R6 b - - 0 1")
	info, err := newTestEngine().Play(pos, -1)
	if err != nil {
		t.Fatal(err)
	}
	if info.Depth != DefaultDepth {
		t.Errorf("depth = %d, want %d", info.Depth, DefaultDepth)
	}
}

func TestPerft(t *testing.T) {
	if got := newTestEngine().Perft(board.NewPosition(), 3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}

func TestScoreToString(t *testing.T) {
	tests := map[int]string{
		MateScore:  "white mates",
		-MateScore: "black mates",
		3:          "+3",
		0:          "0",
		-4:         "-4",
	}
	for score, want := range tests {
		if got := ScoreToString(score); got != want {
			t.Errorf("ScoreToString(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
		if DifficultyDepth[d] < 1 {
			t.Errorf("%v has no depth", d)
		}
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("expected error")
	}
}
