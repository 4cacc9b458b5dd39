package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/game"
	"github.com/hailam/chessplay/internal/render"
	"github.com/hailam/chessplay/internal/storage"
)

var errNoStorage = errors.New("no data directory, statistics are disabled")

const maxPerftDepth = 6

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start a new game",
		Usage:       "new [hvc|hvh|cvc] [white|black]",
		Handler:     newHandler,
	})
	r.Register(&Command{
		Name:        "fen",
		ShortName:   "f",
		Description: "Show the FEN or start a game from one",
		Usage:       "fen [<fen>]",
		Handler:     fenHandler,
	})
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move (e2e4, e7e8q, Nf3, O-O)",
		Usage:       "move <move>",
		Handler:     moveHandler,
	})
	r.Register(&Command{
		Name:        "go",
		ShortName:   "g",
		Description: "Let the computer move for the side to move",
		Usage:       "go [depth]",
		Handler:     goHandler,
	})
	r.Register(&Command{
		Name:        "play",
		ShortName:   "p",
		Description: "Let the computer play n plies (default: to the end)",
		Usage:       "play [n]",
		Handler:     playHandler,
	})
	r.Register(&Command{
		Name:        "undo",
		ShortName:   "u",
		Description: "Take back moves",
		Usage:       "undo [n]",
		Handler:     undoHandler,
	})
}

func (r *Registry) registerInfoCommands() {
	r.Register(&Command{
		Name:        "board",
		ShortName:   "b",
		Description: "Show the board",
		Usage:       "board",
		Handler:     boardHandler,
	})
	r.Register(&Command{
		Name:        "moves",
		Description: "List the legal moves",
		Usage:       "moves",
		Handler:     movesHandler,
	})
	r.Register(&Command{
		Name:        "history",
		ShortName:   "h",
		Description: "Show the moves played",
		Usage:       "history",
		Handler:     historyHandler,
	})
	r.Register(&Command{
		Name:        "eval",
		ShortName:   "e",
		Description: "Evaluate the position",
		Usage:       "eval",
		Handler:     evalHandler,
	})
	r.Register(&Command{
		Name:        "perft",
		Description: "Count leaf nodes of the move tree",
		Usage:       fmt.Sprintf("perft <1-%d>", maxPerftDepth),
		Handler:     perftHandler,
	})
	r.Register(&Command{
		Name:        "export",
		ShortName:   "x",
		Description: "Write the board as SVG or PNG",
		Usage:       "export [file.svg|file.png]",
		Handler:     exportHandler,
	})
	r.Register(&Command{
		Name:        "stats",
		ShortName:   "s",
		Description: "Show game statistics",
		Usage:       "stats",
		Handler:     statsHandler,
	})
}

func (r *Registry) registerSettingsCommands() {
	r.Register(&Command{
		Name:        "depth",
		ShortName:   "d",
		Description: "Show or set the search depth",
		Usage:       "depth [1-10]",
		Handler:     depthHandler,
	})
	r.Register(&Command{
		Name:        "level",
		ShortName:   "l",
		Description: "Set the search depth by difficulty",
		Usage:       "level <easy|medium|hard>",
		Handler:     levelHandler,
	})
	r.Register(&Command{
		Name:        "set",
		Description: "Change a preference",
		Usage:       "set <username|theme|size|color|mode> <value>",
		Handler:     setHandler,
	})
	r.Register(&Command{
		Name:        "prefs",
		Description: "Show preferences",
		Usage:       "prefs",
		Handler:     prefsHandler,
	})
}

func usage(cmd string) error {
	return fmt.Errorf("usage: %s", cmd)
}

func (s *Session) savePrefs() error {
	if s.store == nil {
		return s.prefs.Validate()
	}
	return s.store.SavePreferences(s.prefs)
}

func newHandler(s *Session, args []string) error {
	prefs := *s.prefs
	for _, arg := range args {
		switch a := strings.ToLower(arg); a {
		case "white":
			prefs.PlayerColor = storage.ColorWhite
		case "black":
			prefs.PlayerColor = storage.ColorBlack
		default:
			mode, err := storage.ParseGameMode(a)
			if err != nil {
				return usage("new [hvc|hvh|cvc] [white|black]")
			}
			prefs.GameMode = mode
		}
	}
	if len(args) > 0 {
		s.prefs = &prefs
		if err := s.savePrefs(); err != nil {
			return err
		}
	}

	if err := s.newGame(""); err != nil {
		return err
	}
	s.printf("New game (%s), depth %d", s.mode, s.game.Depth())
	if s.mode == storage.ModeHumanVsComputer {
		s.printf(", you play %s", s.human)
	}
	s.printf("\n")
	s.printBoard()
	return s.computerReplies()
}

func fenHandler(s *Session, args []string) error {
	if len(args) == 0 {
		s.printf("%s\n", s.game.FEN())
		return nil
	}
	if err := s.newGame(strings.Join(args, " ")); err != nil {
		return err
	}
	s.printBoard()
	return s.computerReplies()
}

func moveHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("move <move>")
	}
	return s.humanMove(args[0])
}

func goHandler(s *Session, args []string) error {
	g := s.game
	prev := g.Depth()
	if len(args) > 0 {
		depth, err := strconv.Atoi(args[0])
		if err != nil {
			return usage("go [depth]")
		}
		g.SetDepth(depth)
	}

	err := s.computerMove()
	g.SetDepth(prev)
	if err != nil {
		return err
	}
	return s.computerReplies()
}

func playHandler(s *Session, args []string) error {
	n := -1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return usage("play [n]")
		}
	}

	for i := 0; n < 0 || i < n; i++ {
		if s.game.Status().IsTerminal() {
			return nil
		}
		if err := s.computerMove(); err != nil {
			return err
		}
	}
	return nil
}

func undoHandler(s *Session, args []string) error {
	n := 1
	// take back the computer's answer together with our move
	if s.mode == storage.ModeHumanVsComputer && s.game.NextPlayer().Type == game.Human && s.game.Position().Ply() >= 2 {
		n = 2
	}
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			return usage("undo [n]")
		}
	}

	if err := s.game.Undo(n); err != nil {
		return err
	}
	s.printBoard()
	return nil
}

func boardHandler(s *Session, args []string) error {
	s.printBoard()
	return nil
}

func movesHandler(s *Session, args []string) error {
	pos := s.game.Position()
	legal := pos.LegalMoves().Slice()
	sans := make([]string, len(legal))
	for i, m := range legal {
		sans[i] = m.ToSAN(pos)
	}
	slices.Sort(sans)

	s.printf("%d legal moves: %s\n", len(sans), strings.Join(sans, " "))
	return nil
}

func historyHandler(s *Session, args []string) error {
	start, err := board.ParseFEN(s.game.InitialFEN())
	if err != nil {
		return err
	}
	sans := s.game.SANMoves()
	if len(sans) == 0 {
		s.printf("no moves yet\n")
		return nil
	}
	s.printf("%s\n", formatHistory(start.FullMoveNumber(), start.SideToMove(), sans))
	return nil
}

// formatHistory numbers SAN moves like a game score: "1. e4 e5 2. Nf3".
func formatHistory(moveNumber int, side board.Color, sans []string) string {
	var sb strings.Builder
	for i, san := range sans {
		if side == board.White {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d. %s", moveNumber, san)
		} else {
			if i == 0 {
				fmt.Fprintf(&sb, "%d... %s", moveNumber, san)
			} else {
				sb.WriteString(" " + san)
			}
			moveNumber++
		}
		side = side.Other()
	}
	return sb.String()
}

func evalHandler(s *Session, args []string) error {
	pos := s.game.Position()
	score := engine.Evaluate(pos)
	s.printf("eval %s (material %+d), %s\n",
		engine.ScoreToString(score), engine.Material(pos), s.game.Status())
	return nil
}

func perftHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("perft <depth>")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 || depth > maxPerftDepth {
		return usage(fmt.Sprintf("perft <1-%d>", maxPerftDepth))
	}

	start := time.Now()
	nodes := s.game.Engine().Perft(s.game.Position(), depth)
	s.printf("perft %d: %d nodes in %s\n", depth, nodes, time.Since(start).Round(time.Millisecond))
	return nil
}

func exportHandler(s *Session, args []string) error {
	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case len(args) == 0 && s.exportDir != "":
		name := fmt.Sprintf("%s-%03d.svg", s.game.ID()[:8], s.game.Position().Ply())
		path = filepath.Join(s.exportDir, name)
	default:
		return usage("export <file.svg|file.png>")
	}

	opts := render.DefaultOptions()
	opts.Size = s.prefs.RenderSize
	opts.Theme = s.prefs.Theme
	opts.Flip = s.flipped()
	if err := render.WriteFile(path, s.game.Position(), opts); err != nil {
		return err
	}
	s.printf("board written to %s\n", path)
	return nil
}

func statsHandler(s *Session, args []string) error {
	if s.store == nil {
		return errNoStorage
	}
	stats, err := s.store.LoadStats()
	if err != nil {
		return err
	}

	s.printf("games %d: %s %d, %s %d, %s %d (%.0f%% won)\n",
		stats.GamesPlayed,
		s.pal.green("won"), stats.Wins,
		s.pal.red("lost"), stats.Losses,
		s.pal.yellow("drawn"), stats.Draws,
		stats.GetWinRate())
	s.printf("streak %d, best %d, %d plies in %s\n",
		stats.CurrentStreak, stats.LongestWinStrk, stats.TotalPlies, stats.TotalPlayTime.Round(time.Second))

	printCounts := func(title string, counts map[string]int) {
		if len(counts) == 0 {
			return
		}
		keys := maps.Keys(counts)
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
		}
		s.printf("%s: %s\n", title, strings.Join(parts, " "))
	}
	printCounts("wins by mode", stats.WinsByMode)
	printCounts("wins by depth", stats.WinsByDepth)
	return nil
}

func depthHandler(s *Session, args []string) error {
	if len(args) == 0 {
		s.printf("depth %d\n", s.game.Depth())
		return nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return usage("depth [1-10]")
	}
	return s.setDepth(depth)
}

func levelHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return usage("level <easy|medium|hard>")
	}
	d, err := engine.ParseDifficulty(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	return s.setDepth(engine.DifficultyDepth[d])
}

func (s *Session) setDepth(depth int) error {
	s.game.SetDepth(depth)
	s.prefs.Depth = s.game.Depth()
	s.printf("depth %d\n", s.game.Depth())
	return s.savePrefs()
}

func setHandler(s *Session, args []string) error {
	if len(args) < 2 {
		return usage("set <username|theme|size|color|mode> <value>")
	}
	key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	prefs := *s.prefs
	switch key {
	case "username", "name":
		prefs.Username = value
	case "theme":
		prefs.Theme = strings.ToLower(value)
	case "size":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("size must be a number: %w", err)
		}
		prefs.RenderSize = size
	case "color", "colour":
		switch strings.ToLower(value) {
		case "white":
			prefs.PlayerColor = storage.ColorWhite
		case "black":
			prefs.PlayerColor = storage.ColorBlack
		default:
			return usage("set color <white|black>")
		}
	case "mode":
		mode, err := storage.ParseGameMode(strings.ToLower(value))
		if err != nil {
			return err
		}
		prefs.GameMode = mode
	default:
		return fmt.Errorf("unknown preference %q", key)
	}

	if err := prefs.Validate(); err != nil {
		return err
	}
	s.prefs = &prefs
	if err := s.savePrefs(); err != nil {
		return err
	}
	s.printf("%s = %s (mode and color apply to the next game)\n", key, value)
	return nil
}

func prefsHandler(s *Session, args []string) error {
	p := s.prefs
	color := "white"
	if p.PlayerColor == storage.ColorBlack {
		color = "black"
	}
	s.printf("username %s\ndepth    %d\nmode     %s\ncolor    %s\ntheme    %s (%s)\nsize     %d\n",
		p.Username, p.Depth, p.GameMode, color,
		p.Theme, strings.Join(render.ThemeNames(), ", "), p.RenderSize)
	return nil
}
