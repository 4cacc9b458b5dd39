// Command chessplay-uci runs the engine behind the Universal Chess Interface
// on stdin and stdout.
package main

import (
	"flag"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/uci"
)

var (
	depth      = flag.Int("depth", engine.DefaultDepth, "default search depth (1-10)")
	logLevel   = flag.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	seed       = flag.Int64("seed", 0, "random seed for tie-breaks (0 uses the clock)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// stdout belongs to the protocol, so logs go to stderr
	logger := newLogger(*logLevel)

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	protocol := uci.New(uci.Options{
		Depth:  *depth,
		Logger: &logger,
		Rand:   rand.New(rand.NewSource(s)),
	}, os.Stdout)

	if err := protocol.Run(os.Stdin); err != nil {
		logger.Error().Err(err).Msg("reading commands")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
