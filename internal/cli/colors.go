package cli

// Terminal color codes
const (
	reset   = "\033[0m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
)

// palette wraps text in ANSI colors when enabled.
type palette struct {
	enabled bool
}

func (p palette) wrap(code, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + reset
}

func (p palette) red(s string) string     { return p.wrap(red, s) }
func (p palette) green(s string) string   { return p.wrap(green, s) }
func (p palette) yellow(s string) string  { return p.wrap(yellow, s) }
func (p palette) blue(s string) string    { return p.wrap(blue, s) }
func (p palette) magenta(s string) string { return p.wrap(magenta, s) }
func (p palette) cyan(s string) string    { return p.wrap(cyan, s) }
