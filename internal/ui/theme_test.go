package ui

import (
	"path/filepath"
	"testing"

	"github.com/five82/shopper/internal/prefs"
	"github.com/five82/shopper/internal/results"
	"github.com/five82/shopper/internal/toast"
)

func TestThemeLookups(t *testing.T) {
	th := DarkTheme()

	if got := th.KindColor(toast.KindError); got != th.Danger {
		t.Fatalf("KindColor(error) = %q, want %q", got, th.Danger)
	}
	if got := th.KindColor(toast.Kind("other")); got != th.Info {
		t.Fatalf("KindColor(other) = %q, want %q", got, th.Info)
	}
	if got := th.LevelColor(results.LevelHigh); got != th.Success {
		t.Fatalf("LevelColor(high) = %q, want %q", got, th.Success)
	}
	if got := th.LevelColor(results.LevelLow); got != th.Danger {
		t.Fatalf("LevelColor(low) = %q, want %q", got, th.Danger)
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor(true).Dark || ThemeFor(false).Dark {
		t.Fatalf("ThemeFor did not follow the flag")
	}
	if DarkTheme().Background == LightTheme().Background {
		t.Fatalf("palettes should differ")
	}
}

func TestThemeControllerPrefersStoredValue(t *testing.T) {
	probed := false
	probe := func() bool {
		probed = true
		return true
	}
	ctl := NewThemeController(prefs.Prefs{}.WithDark(false), "", probe)
	if ctl.IsDark() {
		t.Fatalf("stored light preference ignored")
	}
	if probed {
		t.Fatalf("terminal probed despite stored preference")
	}
}

func TestThemeToggleReportsSaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A file where the parent directory should be makes the write fail.
	path := filepath.Join(dir, "prefs.toml", "nested")
	blocker := filepath.Join(dir, "prefs.toml")
	if err := prefs.Save(blocker, prefs.Prefs{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ctl := NewThemeController(prefs.Prefs{}, path, func() bool { return true })
	if err := ctl.Toggle(); err == nil {
		t.Fatalf("expected save error")
	}
	if ctl.IsDark() {
		t.Fatalf("flag should flip even when saving fails")
	}
}
