// ChessPlay - a terminal chess game with a fixed-depth computer opponent
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/cli"
	"github.com/hailam/chessplay/internal/storage"
)

var (
	depth    = flag.Int("depth", 0, "search depth 1-10 (0 uses the saved preference)")
	fen      = flag.String("fen", "", "start from this FEN instead of the initial position")
	dataDir  = flag.String("data-dir", "", "directory for the database, exports and history")
	noStore  = flag.Bool("no-store", false, "do not read or write preferences and statistics")
	logLevel = flag.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	seed     = flag.Int64("seed", 0, "random seed for tie-breaks (0 uses the clock)")
)

func main() {
	flag.Parse()
	logger := newLogger(*logLevel)

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("chessplay")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	paths, err := resolvePaths(*dataDir)
	if err != nil {
		return err
	}

	var store *storage.Storage
	if !*noStore {
		store, err = storage.Open(storage.Options{Dir: paths.db, Logger: &logger})
		if err != nil {
			return err
		}
		defer store.Close()
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	session, err := cli.NewSession(cli.Config{
		FEN:       *fen,
		Depth:     *depth,
		Store:     store,
		ExportDir: paths.exports,
		Logger:    &logger,
		Rand:      rand.New(rand.NewSource(s)),
		Out:       os.Stdout,
		Color:     cli.IsTerminal(os.Stdout),
	})
	if err != nil {
		return err
	}

	if store != nil {
		first, err := store.IsFirstLaunch()
		if err != nil {
			logger.Warn().Err(err).Msg("first launch check")
		}
		if first {
			fmt.Println("Welcome to ChessPlay! Play moves like e2e4 or Nf3; 'help' lists commands.")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				logger.Warn().Err(err).Msg("mark first launch")
			}
		}
	}

	return cli.Run(session, os.Stdin, paths.history)
}

type dataPaths struct {
	db      string
	exports string
	history string
}

// resolvePaths places everything under dir when set, otherwise under the
// platform data directory.
func resolvePaths(dir string) (dataPaths, error) {
	if dir != "" {
		p := dataPaths{
			db:      filepath.Join(dir, "db"),
			exports: filepath.Join(dir, "exports"),
			history: filepath.Join(dir, "history"),
		}
		for _, d := range []string{p.db, p.exports} {
			if err := os.MkdirAll(d, 0755); err != nil {
				return p, fmt.Errorf("create %s: %w", d, err)
			}
		}
		return p, nil
	}

	var p dataPaths
	var err error
	if p.db, err = storage.GetDatabaseDir(); err != nil {
		return p, err
	}
	if p.exports, err = storage.GetExportDir(); err != nil {
		return p, err
	}
	if p.history, err = storage.HistoryFile(); err != nil {
		return p, err
	}
	return p, nil
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
