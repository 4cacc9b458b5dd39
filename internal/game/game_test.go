package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func newGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	g, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewDefaults(t *testing.T) {
	g := newGame(t, Options{})
	if g.FEN() != board.StartFEN {
		t.Errorf("FEN = %s", g.FEN())
	}
	if g.Player(board.White).Type != Human || g.Player(board.Black).Type != Computer {
		t.Error("default players should be human vs computer")
	}
	if g.ID() == "" || g.ID() == g.Player(board.White).ID {
		t.Error("ids should be unique and set")
	}
	if g.Status() != board.Ongoing {
		t.Error("new game should be ongoing")
	}
}

func TestNewInvalidFEN(t *testing.T) {
	if _, err := New(Options{FEN: "not a fen"}); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("err = %v, want ErrInvalidFEN", err)
	}
}

func TestHumanAndComputerMoves(t *testing.T) {
	g := newGame(t, Options{Depth: 1})

	if _, err := g.Move("e2e4"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Move("e7e5"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("err = %v, want ErrNotYourTurn", err)
	}

	info, err := g.ComputerMove()
	if err != nil {
		t.Fatal(err)
	}
	if info.Move == board.NoMove || g.Position().SideToMove() != board.White {
		t.Error("computer should have moved")
	}

	if _, err := g.Move("Nf3"); err != nil {
		t.Errorf("SAN move rejected: %v", err)
	}
	if _, err := g.Move("e2e4"); err == nil {
		t.Error("expected error for a move on the computer's turn")
	}
	if len(g.Moves()) != 3 || len(g.SANMoves()) != 3 {
		t.Errorf("moves = %v", g.Moves())
	}
	if g.SANMoves()[0] != "e4" {
		t.Errorf("san = %v", g.SANMoves())
	}
}

func TestIllegalMove(t *testing.T) {
	g := newGame(t, Options{White: Human, Black: Human})
	if _, err := g.Move("e2e5"); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("err = %v, want ErrIllegalMove", err)
	}
	if g.Position().Ply() != 0 {
		t.Error("illegal move changed the position")
	}
}

func TestGameOverRejectsMoves(t *testing.T) {
	g := newGame(t, Options{
		FEN:   "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		White: Human,
		Black: Human,
	})

	if _, err := g.Move("Ra8"); err != nil {
		t.Fatal(err)
	}
	r := g.Result()
	if r.Status != board.WhiteWins || r.Winner != board.White || r.Plies != 1 {
		t.Errorf("result = %+v", r)
	}
	if _, err := g.Move("g8h8"); !errors.Is(err, ErrGameOver) {
		t.Errorf("move err = %v, want ErrGameOver", err)
	}
	if _, err := g.ComputerMove(); !errors.Is(err, ErrGameOver) {
		t.Errorf("computer err = %v, want ErrGameOver", err)
	}

	if err := g.Undo(1); err != nil {
		t.Fatal(err)
	}
	if g.Status() != board.Ongoing {
		t.Error("undo should reopen the game")
	}
}

func TestComputerFindsMate(t *testing.T) {
	g := newGame(t, Options{
		FEN:   "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1",
		White: Human,
		Black: Computer,
		Depth: 2,
	})
	info, err := g.ComputerMove()
	if err != nil {
		t.Fatal(err)
	}
	if info.Move.String() != "a8a1" {
		t.Errorf("move = %v", info.Move)
	}
	if r := g.Result(); r.Winner != board.Black {
		t.Errorf("result = %+v", r)
	}
}

func TestUndo(t *testing.T) {
	g := newGame(t, Options{White: Human, Black: Human})
	for _, s := range []string{"d2d4", "d7d5", "c2c4"} {
		if _, err := g.Move(s); err != nil {
			t.Fatal(err)
		}
	}

	if err := g.Undo(0); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo(0) err = %v", err)
	}
	if err := g.Undo(4); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo(4) err = %v", err)
	}
	if err := g.Undo(2); err != nil {
		t.Fatal(err)
	}
	if g.Position().Ply() != 1 || g.Position().SideToMove() != board.Black {
		t.Errorf("after undo: ply %d", g.Position().Ply())
	}
}

func TestSetDepthClamps(t *testing.T) {
	g := newGame(t, Options{})
	g.SetDepth(42)
	if g.Depth() != 10 {
		t.Errorf("depth = %d", g.Depth())
	}
	g.SetDepth(-1)
	if g.Depth() != 3 {
		t.Errorf("depth = %d", g.Depth())
	}
}

func TestPlayerTypeString(t *testing.T) {
	tests := map[PlayerType]string{Human: "human", Computer: "computer", 0: "unknown"}
	for pt, want := range tests {
		if got := pt.String(); got != want {
			t.Errorf("PlayerType(%d).String() = %q, want %q", int(pt), got, want)
		}
	}
}
