// Package uci implements the Universal Chess Interface protocol on top of the
// fixed-depth engine. Searches are synchronous: "go" answers with bestmove
// before the next command is read.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
)

// Options configures a UCI handler.
type Options struct {
	// Depth is the default search depth for "go" without "depth".
	Depth  int
	Logger *zerolog.Logger
	Rand   *rand.Rand
}

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	depth    int

	out io.Writer
	log zerolog.Logger
}

// New creates a new UCI protocol handler writing responses to out.
func New(opts Options, out io.Writer) *UCI {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("component", "uci").Logger()

	depth := opts.Depth
	if depth == 0 {
		depth = engine.DefaultDepth
	}

	return &UCI{
		engine:   engine.New(engine.Options{Logger: &logger, Rand: opts.Rand}),
		position: board.NewPosition(),
		depth:    engine.ClampDepth(depth),
		out:      out,
		log:      logger,
	}
}

// Position returns the current position.
func (u *UCI) Position() *board.Position { return u.position }

// Depth returns the default search depth.
func (u *UCI) Depth() int { return u.depth }

// Run reads commands from in until "quit" or EOF.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if !u.Handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Handle executes one command line. It returns false after "quit".
func (u *UCI) Handle(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	cmd := parts[0]
	args := parts[1:]
	u.log.Debug().Str("cmd", line).Msg("command")

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.position = board.NewPosition()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop":
		// searches finish before the next command is read
	case "quit":
		return false
	case "setoption":
		u.handleSetOption(args)
	// Debug commands
	case "d":
		u.handleDisplay()
	case "perft":
		u.handlePerft(args)
	case "eval":
		u.handleEval()
	default:
		u.infoString("Unknown command: %s", cmd)
	}
	return true
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) infoString(format string, args ...interface{}) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessPlay")
	u.println("id author ChessPlay Team")
	u.println("")
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 1 max %d\n", engine.DefaultDepth, engine.MaxDepth)
	u.println("option name Debug type check default false")
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current position is kept when the FEN or any move is invalid.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.infoString("Invalid FEN: %v", err)
			u.log.Warn().Err(err).Msg("position rejected")
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			m, err := pos.ParseMove(moveStr)
			if err != nil {
				u.infoString("Invalid move: %v", err)
				u.log.Warn().Err(err).Str("move", moveStr).Msg("position rejected")
				return
			}
			pos.MakeMove(m)
		}
	}

	u.position = pos
	if board.DebugMoveValidation {
		u.infoString("DEBUG: position %s, %d legal moves", pos.ToFEN(), pos.LegalMoves().Len())
	}
}

// parseGoDepth returns the depth from "go" arguments. Clock and node limits
// are accepted and ignored.
func (u *UCI) parseGoDepth(args []string) int {
	depth := u.depth
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "depth" {
			if d, err := strconv.Atoi(args[i+1]); err == nil {
				depth = engine.ClampDepth(d)
			}
		}
	}
	return depth
}

// handleGo searches the current position and reports the best move.
func (u *UCI) handleGo(args []string) {
	depth := u.parseGoDepth(args)

	if status := u.position.Status(); status.IsTerminal() {
		u.infoString("Game over: %s", status)
		u.println("bestmove 0000")
		return
	}

	start := time.Now()
	move, score := u.engine.Search(u.position, depth)
	info := engine.SearchInfo{
		Depth: depth,
		Move:  move,
		Score: score,
		Nodes: u.engine.Nodes(),
		Time:  time.Since(start),
	}

	if move == board.NoMove {
		u.infoString("No move searched at depth %d", depth)
		u.println("bestmove 0000")
		return
	}

	u.sendInfo(info)
	u.log.Debug().
		Str("move", move.String()).
		Int("score", score).
		Uint64("nodes", info.Nodes).
		Msg("bestmove")
	fmt.Fprintf(u.out, "bestmove %s\n", move.String())
}

// sendInfo outputs search info in UCI format. Scores are converted from
// white's point of view in pawns to the mover's point of view in centipawns.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	cp := info.Score * 100
	if u.position.SideToMove() == board.Black {
		cp = -cp
	}

	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score cp %d", cp),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	parts = append(parts, "pv "+info.Move.String())
	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value []string
	var target *[]string

	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	v := strings.Join(value, " ")
	switch strings.ToLower(strings.Join(name, " ")) {
	case "depth":
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 1 {
			u.infoString("Invalid depth: %s", v)
			return
		}
		u.depth = engine.ClampDepth(depth)
	case "debug":
		enabled := strings.ToLower(v) == "true"
		board.DebugMoveValidation = enabled
		if enabled {
			u.infoString("Debug mode enabled")
		}
	default:
		u.infoString("Unknown option: %s", strings.Join(name, " "))
	}
}

// handleDisplay prints the board, FEN and game state.
func (u *UCI) handleDisplay() {
	fmt.Fprint(u.out, u.position.String())
	fmt.Fprintf(u.out, "Fen: %s\n", u.position.ToFEN())
	fmt.Fprintf(u.out, "Status: %s\n", u.position.Status())
}

// handleEval prints the static evaluation.
func (u *UCI) handleEval() {
	score := engine.Evaluate(u.position)
	fmt.Fprintf(u.out, "Evaluation: %s (material %+d)\n", engine.ScoreToString(score), engine.Material(u.position))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			u.infoString("Invalid perft depth: %s", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}
