package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/greenhouse/internal/config"
	"github.com/five82/greenhouse/internal/logging"
	"github.com/five82/greenhouse/internal/prefs"
	"github.com/five82/greenhouse/internal/state"
	"github.com/five82/greenhouse/internal/ui"
)

// Options configure the Greenhouse application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/greenhouse/prefs.toml
	LogPath    string // empty uses the config's log_file
	Table      bool   // start in the table view
}

// Run boots the Greenhouse TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, logger, err := prepare(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("greenhouse starting",
		zap.String("view", string(uiOpts.View)),
		zap.String("theme", uiOpts.ThemeName),
		zap.Int("sidebar", uiOpts.Store.Len(state.Sidebar)),
		zap.Int("grouped", uiOpts.Store.Len(state.Grouped)))

	if err := ui.Run(ctx, uiOpts); err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("greenhouse stopped")
	return nil
}

// prepare loads config and prefs, opens the log and seeds the store.
func prepare(opts Options) (ui.Options, *zap.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logPath := cfg.LogFile
	if opts.LogPath != "" {
		logPath = opts.LogPath
	}
	logger, err := logging.New(logging.Options{Path: logPath, Debug: cfg.LogDebug})
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("open log: %w", err)
	}

	store, err := state.NewStore(cfg.Records(state.Sidebar), cfg.Records(state.Grouped))
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("seed store: %w", err)
	}

	return ui.Options{
		Store:     store,
		Logger:    logger,
		ThemeName: resolveTheme(cfg, userPrefs),
		View:      resolveView(opts, cfg, userPrefs),
		PrefsPath: opts.PrefsPath,
	}, logger, nil
}

// resolveView picks the starting view: flag, then saved preference, then
// config.
func resolveView(opts Options, cfg config.Config, p prefs.Prefs) config.View {
	if opts.Table {
		return config.ViewTable
	}
	if view, err := config.ParseView(p.View); err == nil && p.View != "" {
		return view
	}
	return cfg.View
}

// resolveTheme prefers a theme the operator saved over the config's.
func resolveTheme(cfg config.Config, p prefs.Prefs) string {
	if p.ThemeSaved || cfg.Theme == "" {
		return p.Theme
	}
	return cfg.Theme
}
