// Package game drives a single chess game: it owns the live Position, knows
// which side is played by the computer and enforces the
// Playing -> Checkmate | Draw state machine.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
)

var (
	// ErrGameOver is returned for moves made after checkmate or a draw.
	ErrGameOver = errors.New("game is over")
	// ErrNotYourTurn is returned when a human moves for the computer's side.
	ErrNotYourTurn = errors.New("it is the computer's turn")
	// ErrNothingToUndo is returned by Undo on an empty move list.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// PlayerType tells who makes the moves for a color.
type PlayerType int

const (
	Human PlayerType = iota + 1
	Computer
)

// String returns "human" or "computer".
func (t PlayerType) String() string {
	switch t {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// Player is one side of the game.
type Player struct {
	ID    string
	Color board.Color
	Type  PlayerType
}

// Options configures a new Game.
type Options struct {
	// FEN of the initial position. Empty means the standard start position.
	FEN   string
	White PlayerType
	Black PlayerType
	// Depth is the computer search depth, clamped like engine.Play does.
	// Zero selects engine.DefaultDepth.
	Depth  int
	Logger *zerolog.Logger
	Rand   *rand.Rand
}

// Result describes the outcome of a finished game.
type Result struct {
	Status board.Status
	Winner board.Color // NoColor for draws and ongoing games
	Plies  int
}

// Game is a single game session. It is not safe for concurrent use.
type Game struct {
	id         string
	initialFEN string
	pos        *board.Position
	players    [2]*Player
	engine     *engine.Engine
	depth      int
	startedAt  time.Time
	log        zerolog.Logger
}

// New creates a game from opts.
func New(opts Options) (*Game, error) {
	fen := opts.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	white, black := opts.White, opts.Black
	if white == 0 {
		white = Human
	}
	if black == 0 {
		black = Computer
	}

	depth := opts.Depth
	if depth == 0 {
		depth = engine.DefaultDepth
	}

	id := uuid.New().String()
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("game_id", id).Logger()

	g := &Game{
		id:         id,
		initialFEN: fen,
		pos:        pos,
		players: [2]*Player{
			{ID: uuid.New().String(), Color: board.White, Type: white},
			{ID: uuid.New().String(), Color: board.Black, Type: black},
		},
		engine:    engine.New(engine.Options{Logger: &logger, Rand: opts.Rand}),
		depth:     engine.ClampDepth(depth),
		startedAt: time.Now(),
		log:       logger,
	}

	g.log.Info().
		Str("fen", fen).
		Str("white", white.String()).
		Str("black", black.String()).
		Int("depth", g.depth).
		Msg("game started")

	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// InitialFEN returns the FEN the game started from.
func (g *Game) InitialFEN() string { return g.initialFEN }

// Position returns the live position. Callers must not make moves on it directly.
func (g *Game) Position() *board.Position { return g.pos }

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string { return g.pos.ToFEN() }

// StartedAt returns when the game was created.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// Engine returns the engine used for computer moves.
func (g *Game) Engine() *engine.Engine { return g.engine }

// Depth returns the computer search depth.
func (g *Game) Depth() int { return g.depth }

// SetDepth changes the computer search depth.
func (g *Game) SetDepth(depth int) {
	g.depth = engine.ClampDepth(depth)
}

// Player returns the player of color c.
func (g *Game) Player(c board.Color) *Player {
	return g.players[c]
}

// NextPlayer returns the player to move.
func (g *Game) NextPlayer() *Player {
	return g.players[g.pos.SideToMove()]
}

// SetPlayerType changes who plays color c.
func (g *Game) SetPlayerType(c board.Color, t PlayerType) {
	g.players[c].Type = t
}

// Status returns the state of the game.
func (g *Game) Status() board.Status {
	return g.pos.Status()
}

// Result returns the outcome of the game so far.
func (g *Game) Result() Result {
	status := g.Status()
	r := Result{Status: status, Winner: board.NoColor, Plies: g.pos.Ply()}
	switch status {
	case board.WhiteWins:
		r.Winner = board.White
	case board.BlackWins:
		r.Winner = board.Black
	}
	return r
}

// Move makes a human move given in coordinate form ("e2e4") or SAN ("Nf3").
func (g *Game) Move(s string) (board.Move, error) {
	if status := g.Status(); status.IsTerminal() {
		return board.NoMove, fmt.Errorf("%w: %s", ErrGameOver, status)
	}
	if g.NextPlayer().Type != Human {
		return board.NoMove, ErrNotYourTurn
	}

	m, err := g.pos.ParseMove(s)
	if err != nil {
		var sanErr error
		if m, sanErr = g.pos.ParseSAN(s); sanErr != nil {
			return board.NoMove, err
		}
	}

	san := m.ToSAN(g.pos)
	g.pos.MakeMove(m)
	g.log.Info().Str("move", m.String()).Str("san", san).Int("ply", g.pos.Ply()).Msg("human move")
	g.logIfOver()
	return m, nil
}

// ComputerMove searches the position with the engine and makes the chosen move.
func (g *Game) ComputerMove() (engine.SearchInfo, error) {
	if status := g.Status(); status.IsTerminal() {
		return engine.SearchInfo{}, fmt.Errorf("%w: %s", ErrGameOver, status)
	}

	info, err := g.engine.Play(g.pos, g.depth)
	if err != nil {
		return info, fmt.Errorf("computer move: %w", err)
	}
	g.logIfOver()
	return info, nil
}

// Undo takes back the last n plies.
func (g *Game) Undo(n int) error {
	if n < 1 || n > g.pos.Ply() {
		return fmt.Errorf("%w: requested %d, %d available", ErrNothingToUndo, n, g.pos.Ply())
	}
	for i := 0; i < n; i++ {
		g.pos.UnmakeMove()
	}
	g.log.Info().Int("plies", n).Msg("undo")
	return nil
}

// Moves returns the moves played so far, oldest first.
func (g *Game) Moves() []board.Move {
	history := g.pos.History()
	moves := make([]board.Move, len(history))
	for i, h := range history {
		moves[i] = h.Move
	}
	return moves
}

// SANMoves returns the moves played so far in SAN.
func (g *Game) SANMoves() []string {
	start, err := board.ParseFEN(g.initialFEN)
	if err != nil {
		return nil
	}
	return board.MovesToSAN(start, g.Moves())
}

func (g *Game) logIfOver() {
	if status := g.Status(); status.IsTerminal() {
		g.log.Info().Str("status", status.String()).Int("plies", g.pos.Ply()).Msg("game over")
	}
}
