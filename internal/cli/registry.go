package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrQuit is returned by Execute when the session should end.
var ErrQuit = errors.New("quit")

// Command defines a command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	commands map[string]*Command
	primary  map[string]*Command
}

// NewRegistry creates a registry with all commands registered.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		primary:  make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerInfoCommands()
	r.registerSettingsCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})
	r.Register(&Command{
		Name:        "quit",
		ShortName:   "q",
		Description: "Leave the program",
		Usage:       "quit",
		Handler:     func(*Session, []string) error { return ErrQuit },
	})
	r.commands["exit"] = r.commands["quit"]

	return r
}

// Register adds cmd under its name and short name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	r.primary[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Lookup finds a command by name or short name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the primary command names, sorted.
func (r *Registry) Names() []string {
	names := maps.Keys(r.primary)
	slices.Sort(names)
	return names
}

// Execute runs one input line. Words that are not commands are tried as moves.
// Handler errors other than ErrQuit are printed and swallowed.
func (r *Registry) Execute(s *Session, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	name, args := strings.ToLower(parts[0]), parts[1:]

	cmd, exists := r.commands[name]
	if !exists {
		if len(parts) == 1 {
			if err := s.humanMove(parts[0]); err == nil {
				return nil
			}
		}
		s.printf("%s\n", s.pal.red("Unknown command or illegal move: "+parts[0]))
		s.printf("Type 'help' for available commands\n")
		return nil
	}

	err := cmd.Handler(s, args)
	if errors.Is(err, ErrQuit) {
		return ErrQuit
	}
	if err != nil {
		s.printf("%s\n", s.pal.red("Error: "+err.Error()))
	}
	return nil
}

func (r *Registry) completer() readline.AutoCompleter {
	names := r.Names()
	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		items[i] = readline.PcItem(name)
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		s.printf("\n%s - %s\n", s.pal.cyan(cmd.Name), cmd.Description)
		if cmd.ShortName != "" {
			s.printf("Short form: %s\n", s.pal.cyan(cmd.ShortName))
		}
		s.printf("Usage: %s\n", cmd.Usage)
		return nil
	}

	s.printf("\n%s\n\n", s.pal.cyan("Available Commands:"))
	for _, name := range r.Names() {
		cmd := r.primary[name]
		short := "   "
		if cmd.ShortName != "" {
			short = "[" + s.pal.cyan(cmd.ShortName) + "]"
		}
		s.printf("  %s %-8s %s\n", short, cmd.Name, cmd.Description)
	}
	s.printf("\nMoves can be typed directly: e2e4, Nf3, O-O\n")
	s.printf("Type 'help <command>' for detailed usage\n")
	return nil
}
