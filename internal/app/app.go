package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopper/internal/backend"
	"github.com/five82/shopper/internal/config"
	"github.com/five82/shopper/internal/logging"
	"github.com/five82/shopper/internal/prefs"
	"github.com/five82/shopper/internal/state"
	"github.com/five82/shopper/internal/toast"
	"github.com/five82/shopper/internal/ui"
	"github.com/five82/shopper/internal/upload"
	"github.com/five82/shopper/internal/videolink"
)

// Options configure the shopper application.
type Options struct {
	ConfigPath string
	EnvPath    string // empty loads ./.env when present
	PrefsPath  string // empty uses default ~/.config/shopper/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the shopper TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnv(opts.EnvPath); err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.OpenFile(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	client, err := backend.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}
	logger.Info("shopper starting", "api", client.BaseURL())

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", prefsPath, "error", err)
	}
	theme := ui.NewThemeController(userPrefs, prefsPath, lipgloss.HasDarkBackground)

	toasts := toast.NewManager()
	defer toasts.Close()

	previews := upload.NewPreviewRegistry()
	defer previews.Close()

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	StartPoller(pollCtx, store, client, interval, logger.With("component", "poller"))

	err = ui.Run(ui.Options{
		Context:      ctx,
		API:          client,
		Store:        store,
		Toasts:       toasts,
		Previews:     previews,
		Theme:        theme,
		LinkAnalyzer: videolink.SimulatedAnalyzer{Delay: videolink.DefaultSimulatedDelay},
		Logger:       logger.With("component", "ui"),
	})
	logger.Info("shopper stopped", "error", err)
	return err
}
