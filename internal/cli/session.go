// Package cli implements the interactive command-line front end: a command
// registry, a readline prompt and the session state shared by the commands.
package cli

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/game"
	"github.com/hailam/chessplay/internal/storage"
)

// Config configures a Session.
type Config struct {
	// FEN of the first game. Empty means the standard start position.
	FEN string
	// Depth overrides the stored search depth when non-zero.
	Depth int
	// Store persists preferences and statistics. Optional.
	Store *storage.Storage
	// ExportDir is where "export" writes when given no file name. Optional.
	ExportDir string
	Logger    *zerolog.Logger
	Rand      *rand.Rand
	Out       io.Writer
	// Color enables ANSI colors in the output.
	Color bool
}

// Session holds the current game and settings for the commands.
type Session struct {
	game      *game.Game
	mode      storage.GameMode
	human     board.Color
	prefs     *storage.UserPreferences
	store     *storage.Storage
	exportDir string
	recorded  bool

	out io.Writer
	pal palette
	log zerolog.Logger
	rng *rand.Rand
}

// NewSession loads preferences and starts the first game.
func NewSession(cfg Config) (*Session, error) {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	prefs := storage.DefaultPreferences()
	if cfg.Store != nil {
		var err error
		if prefs, err = cfg.Store.LoadPreferences(); err != nil {
			return nil, fmt.Errorf("load preferences: %w", err)
		}
	}
	if cfg.Depth != 0 {
		prefs.Depth = engine.ClampDepth(cfg.Depth)
	}

	s := &Session{
		prefs:     prefs,
		store:     cfg.Store,
		exportDir: cfg.ExportDir,
		out:       out,
		pal:       palette{enabled: cfg.Color},
		log:       logger,
		rng:       rng,
	}
	if err := s.newGame(cfg.FEN); err != nil {
		return nil, err
	}
	return s, nil
}

// Game returns the current game.
func (s *Session) Game() *game.Game { return s.game }

// Mode returns the current game mode.
func (s *Session) Mode() storage.GameMode { return s.mode }

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// newGame replaces the current game using the mode, color and depth from the
// preferences.
func (s *Session) newGame(fen string) error {
	mode, human := s.prefs.GameMode, board.White
	if s.prefs.PlayerColor == storage.ColorBlack {
		human = board.Black
	}

	white, black := game.Human, game.Human
	switch mode {
	case storage.ModeHumanVsComputer:
		if human == board.White {
			black = game.Computer
		} else {
			white = game.Computer
		}
	case storage.ModeComputerVsComputer:
		white, black = game.Computer, game.Computer
	}

	g, err := game.New(game.Options{
		FEN:    fen,
		White:  white,
		Black:  black,
		Depth:  s.prefs.Depth,
		Logger: &s.log,
		Rand:   s.rng,
	})
	if err != nil {
		return err
	}

	s.game = g
	s.mode = mode
	s.human = human
	s.recorded = false
	return nil
}

// humanMove plays a move for the human and lets the computer answer.
func (s *Session) humanMove(text string) error {
	m, err := s.game.Move(text)
	if err != nil {
		return err
	}
	sans := s.game.SANMoves()
	s.printf("%s %s\n", s.pal.blue("you play"), sanOr(sans, m))

	if s.announceIfOver() {
		return nil
	}
	return s.computerReplies()
}

// computerReplies lets the computer move while it is its turn in
// human-vs-computer games.
func (s *Session) computerReplies() error {
	for s.mode == storage.ModeHumanVsComputer &&
		!s.game.Status().IsTerminal() &&
		s.game.NextPlayer().Type == game.Computer {
		if err := s.computerMove(); err != nil {
			return err
		}
	}
	return nil
}

// computerMove makes one engine move for whoever is to move.
func (s *Session) computerMove() error {
	g := s.game
	mover := g.Position().SideToMove()
	prev := g.Player(mover).Type
	g.SetPlayerType(mover, game.Computer)
	info, err := g.ComputerMove()
	g.SetPlayerType(mover, prev)
	if err != nil {
		return err
	}

	s.printf("%s %s  %s  %d nodes, %s\n",
		s.pal.magenta("computer plays"),
		sanOr(g.SANMoves(), info.Move),
		engine.ScoreToString(info.Score),
		info.Nodes,
		info.Time.Round(time.Millisecond))
	s.announceIfOver()
	return nil
}

func sanOr(sans []string, m board.Move) string {
	if len(sans) == 0 {
		return m.String()
	}
	return sans[len(sans)-1]
}

// announceIfOver prints the result of a finished game once and records it.
func (s *Session) announceIfOver() bool {
	r := s.game.Result()
	if !r.Status.IsTerminal() {
		return false
	}

	var msg string
	switch r.Status {
	case board.WhiteWins, board.BlackWins:
		msg = fmt.Sprintf("Checkmate. %s wins.", r.Winner)
	case board.Stalemate:
		msg = "Draw by stalemate."
	case board.FiftyMoveDraw:
		msg = "Draw by the fifty-move rule."
	}
	s.printf("%s\n", s.pal.yellow(msg))
	s.record(r)
	return true
}

func (s *Session) record(r game.Result) {
	if s.recorded || s.store == nil || s.mode != storage.ModeHumanVsComputer {
		return
	}
	s.recorded = true

	result := storage.GameResult{
		Won:      r.Winner == s.human,
		Draw:     r.Winner == board.NoColor,
		Mode:     s.mode,
		Depth:    s.game.Depth(),
		Plies:    r.Plies,
		Duration: time.Since(s.game.StartedAt()),
	}
	if err := s.store.RecordGame(result); err != nil {
		s.log.Error().Err(err).Msg("record game")
		s.printf("%s\n", s.pal.red("could not record game: "+err.Error()))
	}
}

// prompt returns the prompt showing the side to move.
func (s *Session) prompt() string {
	side := s.pal.blue("White")
	if s.game.Position().SideToMove() == board.Black {
		side = s.pal.red("Black")
	}
	status := s.game.Status()
	if status.IsTerminal() {
		side = s.pal.yellow(status.String())
	}
	return fmt.Sprintf("%s [%s %s] %s ", s.pal.yellow("chessplay"), s.mode, side, s.pal.yellow(">"))
}

// flipped reports whether boards are drawn from black's side.
func (s *Session) flipped() bool {
	return s.mode == storage.ModeHumanVsComputer && s.human == board.Black
}

// printBoard prints the position with colored pieces.
func (s *Session) printBoard() {
	pos := s.game.Position()
	files := "   a b c d e f g h"
	ranks := []int{7, 6, 5, 4, 3, 2, 1, 0}
	fileOrder := []int{0, 1, 2, 3, 4, 5, 6, 7}
	if s.flipped() {
		files = "   h g f e d c b a"
		ranks = []int{0, 1, 2, 3, 4, 5, 6, 7}
		fileOrder = []int{7, 6, 5, 4, 3, 2, 1, 0}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, rank := range ranks {
		sb.WriteString(s.pal.cyan(fmt.Sprintf("%d", rank+1)) + "  ")
		for _, file := range fileOrder {
			p := pos.PieceAt(board.NewSquare(file, rank))
			switch {
			case p == board.Empty:
				sb.WriteString(". ")
			case p.Color() == board.White:
				sb.WriteString(s.pal.blue(p.String()) + " ")
			default:
				sb.WriteString(s.pal.red(p.String()) + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + s.pal.cyan(files) + "\n\n")
	s.printf("%s", sb.String())

	if pos.InCheck() && !s.game.Status().IsTerminal() {
		s.printf("%s\n", s.pal.red(pos.SideToMove().String()+" is in check"))
	}
}
