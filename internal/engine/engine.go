package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
)

var (
	// ErrGameOver is returned by Play when the position is already terminal.
	ErrGameOver = errors.New("game is over")
	// ErrNoMove is returned by Play when the search yields no move (depth 0).
	ErrNoMove = errors.New("search returned no move")
)

// Depth bounds applied by Play.
const (
	DefaultDepth = 3
	MaxDepth     = 10
)

// SearchInfo contains information about a completed search.
type SearchInfo struct {
	Depth int
	Move  board.Move
	Score int
	Nodes uint64
	Time  time.Duration
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 1 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultyDepth maps difficulty to search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   1,
	Medium: 3,
	Hard:   4,
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Options configures an Engine.
type Options struct {
	// Logger receives one debug line per Play. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Rand drives the tie-break coin. Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Engine is a fixed-depth minimax searcher. An Engine is not safe for
// concurrent use, and neither is the Position it searches.
type Engine struct {
	log   zerolog.Logger
	rng   *rand.Rand
	flip  func() bool
	nodes uint64

	// Callbacks
	OnInfo func(SearchInfo)
}

// New creates an engine.
func New(opts Options) *Engine {
	e := &Engine{
		log: zerolog.Nop(),
		rng: opts.Rand,
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.flip = func() bool { return e.rng.Intn(2) == 1 }
	return e
}

// Nodes returns the number of positions visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

// ClampDepth maps out-of-range depths the way Play does: negative depths
// become DefaultDepth and depths above MaxDepth become MaxDepth.
func ClampDepth(depth int) int {
	if depth < 0 {
		return DefaultDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// Play searches pos to the clamped depth and makes the chosen move on it.
func (e *Engine) Play(pos *board.Position, depth int) (SearchInfo, error) {
	if status := pos.Status(); status.IsTerminal() {
		return SearchInfo{}, fmt.Errorf("%w: %s", ErrGameOver, status)
	}

	depth = ClampDepth(depth)
	start := time.Now()
	move, score := e.Search(pos, depth)
	info := SearchInfo{
		Depth: depth,
		Move:  move,
		Score: score,
		Nodes: e.nodes,
		Time:  time.Since(start),
	}
	if move == board.NoMove {
		return info, fmt.Errorf("%w at depth %d", ErrNoMove, depth)
	}

	e.log.Debug().
		Str("move", move.String()).
		Int("score", score).
		Int("depth", depth).
		Uint64("nodes", info.Nodes).
		Dur("elapsed", info.Time).
		Msg("computer move")

	if e.OnInfo != nil {
		e.OnInfo(info)
	}

	pos.MakeMove(move)
	return info, nil
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		pos.MakeMove(moves.Get(i))
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove()
	}

	return nodes
}

// ScoreToString converts a score to a human-readable string from white's
// point of view.
func ScoreToString(score int) string {
	switch {
	case score >= MateScore:
		return "white mates"
	case score <= -MateScore:
		return "black mates"
	case score > 0:
		return "+" + strconv.Itoa(score)
	default:
		return strconv.Itoa(score)
	}
}
