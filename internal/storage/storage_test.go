package storage

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Depth != 3 {
			t.Errorf("Expected depth 3, got %d", prefs.Depth)
		}
		if prefs.GameMode != ModeHumanVsComputer {
			t.Errorf("Expected human vs computer")
		}
		if err := prefs.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *UserPreferences)
		field  string
	}{
		{"empty username", func(p *UserPreferences) { p.Username = "" }, "Username is required"},
		{"depth too high", func(p *UserPreferences) { p.Depth = 11 }, "Depth must be at most 10"},
		{"depth zero", func(p *UserPreferences) { p.Depth = 0 }, "Depth must be at least 1"},
		{"bad mode", func(p *UserPreferences) { p.GameMode = 7 }, "GameMode must be at most 2"},
		{"bad theme", func(p *UserPreferences) { p.Theme = "neon" }, "Theme must be one of"},
		{"tiny render", func(p *UserPreferences) { p.RenderSize = 10 }, "RenderSize must be at least 160"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPreferences()
			tc.mutate(p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidPreferences) {
				t.Fatalf("err = %v, want ErrInvalidPreferences", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("err = %q, want mention of %q", err, tc.field)
			}
		})
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTemp(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Username != "Player" {
		t.Errorf("fresh database should return defaults, got %+v", prefs)
	}

	prefs.Username = "magnus"
	prefs.Depth = 5
	prefs.PlayerColor = ColorBlack
	prefs.Theme = "green"
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "magnus" || got.Depth != 5 || got.PlayerColor != ColorBlack || got.Theme != "green" {
		t.Errorf("loaded %+v", got)
	}

	bad := DefaultPreferences()
	bad.Depth = 42
	if err := s.SavePreferences(bad); !errors.Is(err, ErrInvalidPreferences) {
		t.Errorf("err = %v, want ErrInvalidPreferences", err)
	}
	if got, _ := s.LoadPreferences(); got.Depth != 5 {
		t.Error("invalid preferences should not be written")
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTemp(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("first launch should be complete")
	}
}

func TestRecordGame(t *testing.T) {
	s, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	results := []GameResult{
		{Won: true, Mode: ModeHumanVsComputer, Depth: 3, Plies: 40, Duration: time.Minute},
		{Won: true, Mode: ModeHumanVsComputer, Depth: 3, Plies: 30, Duration: time.Minute},
		{Draw: true, Mode: ModeHumanVsHuman, Plies: 100},
		{Won: true, Mode: ModeHumanVsComputer, Depth: 4, Plies: 20},
		{Mode: ModeHumanVsComputer, Depth: 5, Plies: 10},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 5 || stats.Wins != 3 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LongestWinStrk != 2 || stats.CurrentStreak != 0 {
		t.Errorf("streaks = %d/%d", stats.LongestWinStrk, stats.CurrentStreak)
	}
	if stats.WinsByMode["hvc"] != 3 || stats.WinsByDepth["depth_3"] != 2 || stats.WinsByDepth["depth_4"] != 1 {
		t.Errorf("breakdown = %v %v", stats.WinsByMode, stats.WinsByDepth)
	}
	if stats.TotalPlies != 200 || stats.TotalPlayTime != 2*time.Minute {
		t.Errorf("totals = %d plies, %v", stats.TotalPlies, stats.TotalPlayTime)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(GameResult{Won: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 {
		t.Errorf("games played = %d after reopen", stats.GamesPlayed)
	}
}

func TestParseGameMode(t *testing.T) {
	for _, m := range []GameMode{ModeHumanVsHuman, ModeHumanVsComputer, ModeComputerVsComputer} {
		got, err := ParseGameMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseGameMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseGameMode("solo"); err == nil {
		t.Error("expected error")
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database dir missing: %v", err)
	}
}
