package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// ErrInvalidPreferences is returned when preferences fail validation.
var ErrInvalidPreferences = errors.New("invalid preferences")

var validate = validator.New()

// GameMode represents the game mode
type GameMode int

const (
	ModeHumanVsHuman GameMode = iota
	ModeHumanVsComputer
	ModeComputerVsComputer
)

// String returns the short mode key used in statistics.
func (m GameMode) String() string {
	switch m {
	case ModeHumanVsHuman:
		return "hvh"
	case ModeHumanVsComputer:
		return "hvc"
	case ModeComputerVsComputer:
		return "cvc"
	default:
		return "unknown"
	}
}

// ParseGameMode parses a mode key.
func ParseGameMode(s string) (GameMode, error) {
	for _, m := range []GameMode{ModeHumanVsHuman, ModeHumanVsComputer, ModeComputerVsComputer} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeHumanVsComputer, fmt.Errorf("unknown game mode %q", s)
}

// PlayerColor represents which color the human plays
type PlayerColor int

const (
	ColorWhite PlayerColor = iota
	ColorBlack
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username    string      `json:"username" validate:"required,max=32"`
	Depth       int         `json:"depth" validate:"min=1,max=10"`
	GameMode    GameMode    `json:"game_mode" validate:"min=0,max=2"`
	PlayerColor PlayerColor `json:"player_color" validate:"min=0,max=1"`
	Theme       string      `json:"theme" validate:"oneof=classic green blue"`
	RenderSize  int         `json:"render_size" validate:"min=160,max=2048"`
	LastPlayed  time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:    "Player",
		Depth:       3,
		GameMode:    ModeHumanVsComputer,
		PlayerColor: ColorWhite,
		Theme:       "classic",
		RenderSize:  480,
		LastPlayed:  time.Now(),
	}
}

// Validate checks the preferences against their field constraints.
func (p *UserPreferences) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", fe.Field())
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", fe.Field(), fe.Param())
		case "min":
			fmt.Fprintf(&details, "%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			fmt.Fprintf(&details, "%s must be at most %s", fe.Field(), fe.Param())
		default:
			fmt.Fprintf(&details, "%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPreferences, details.String())
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByMode     map[string]int `json:"wins_by_mode"`
	WinsByDepth    map[string]int `json:"wins_by_depth"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	TotalPlies     int            `json:"total_plies"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByMode:  make(map[string]int),
		WinsByDepth: make(map[string]int),
	}
}

// GameResult represents the result of a completed game from the user's side
type GameResult struct {
	Won      bool
	Draw     bool
	Mode     GameMode
	Depth    int
	Plies    int
	Duration time.Duration
}

// Options configures Open.
type Options struct {
	// Dir is the database directory. Empty means GetDatabaseDir().
	Dir string
	// InMemory keeps everything in memory; Dir is ignored.
	InMemory bool
	Logger   *zerolog.Logger
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens (or creates) the database.
func Open(o Options) (*Storage, error) {
	logger := zerolog.Nop()
	if o.Logger != nil {
		logger = *o.Logger
	}
	logger = logger.With().Str("component", "storage").Logger()

	var opts badger.Options
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := o.Dir
		if dir == "" {
			var err error
			if dir, err = GetDatabaseDir(); err != nil {
				return nil, fmt.Errorf("database dir: %w", err)
			}
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(badgerLogger{log: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger.Debug().Str("dir", opts.Dir).Bool("in_memory", o.InMemory).Msg("database opened")
	return &Storage{db: db, log: logger}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences validates and saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found.
// Stored preferences that no longer validate are replaced by defaults.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	if err != nil {
		return nil, err
	}

	if verr := prefs.Validate(); verr != nil {
		s.log.Warn().Err(verr).Msg("stored preferences invalid, using defaults")
		return DefaultPreferences(), nil
	}
	return prefs, nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	var stats *GameStats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = readStats(txn)
		return err
	})
	return stats, err
}

func readStats(txn *badger.Txn) (*GameStats, error) {
	stats := NewGameStats()

	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.WinsByMode == nil {
		stats.WinsByMode = make(map[string]int)
	}
	if stats.WinsByDepth == nil {
		stats.WinsByDepth = make(map[string]int)
	}
	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats, err := readStats(txn)
		if err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.TotalPlayTime += result.Duration
		stats.TotalPlies += result.Plies

		switch {
		case result.Draw:
			stats.Draws++
			stats.CurrentStreak = 0
		case result.Won:
			stats.Wins++
			stats.CurrentStreak++
			if stats.CurrentStreak > stats.LongestWinStrk {
				stats.LongestWinStrk = stats.CurrentStreak
			}
			stats.WinsByMode[result.Mode.String()]++
			stats.WinsByDepth[fmt.Sprintf("depth_%d", result.Depth)]++
		default:
			stats.Losses++
			stats.CurrentStreak = 0
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}

		s.log.Debug().
			Int("games", stats.GamesPlayed).
			Bool("won", result.Won).
			Bool("draw", result.Draw).
			Msg("game recorded")

		return txn.Set([]byte(keyStats), data)
	})
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// badgerLogger adapts zerolog to badger.Logger.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
