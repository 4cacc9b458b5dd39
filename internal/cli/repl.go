package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Run reads commands from in until EOF or quit. A terminal gets a readline
// prompt with history and completion; anything else is read line by line.
func Run(s *Session, in io.ReadCloser, historyFile string) error {
	reg := NewRegistry()

	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		return runInteractive(s, reg, in, historyFile)
	}
	return runScript(s, reg, in)
}

func runInteractive(s *Session, reg *Registry, in io.ReadCloser, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    reg.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           in,
		Stdout:          s.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s.printf("%s\n", s.pal.cyan("chessplay"))
	s.printf("Type 'help' for commands, moves like e2e4 or Nf3\n")
	s.printBoard()
	if err := s.computerReplies(); err != nil {
		s.printf("%s\n", s.pal.red("Error: "+err.Error()))
	}

	for {
		rl.SetPrompt(s.prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if errors.Is(reg.Execute(s, strings.TrimSpace(line)), ErrQuit) {
			return nil
		}
	}
}

func runScript(s *Session, reg *Registry, in io.Reader) error {
	if err := s.computerReplies(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if errors.Is(reg.Execute(s, line), ErrQuit) {
			return nil
		}
	}
	return scanner.Err()
}
