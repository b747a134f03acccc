package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shekohex/dotai/internal/config"
	"github.com/shekohex/dotai/internal/hook"
	"github.com/shekohex/dotai/internal/logging"
	"github.com/shekohex/dotai/internal/notify"
	"github.com/shekohex/dotai/internal/store"
	"github.com/shekohex/dotai/internal/watcher"
)

// app bundles everything a command needs once config and store are up.
type app struct {
	baseDir  string
	cfg      *config.Configuration
	store    *store.Store
	log      zerolog.Logger
	notifier *notify.Notifier
	runner   *watcher.Runner
	tracker  *hook.Tracker
}

// newApp loads configuration, opens the store and reconciles stale
// watcher claims. component tags this process's log entries.
func newApp(cmd *cobra.Command, component string) (*app, error) {
	baseDir, _ := cmd.Flags().GetString("dir")
	if baseDir == "" {
		baseDir = config.BaseDir()
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, err
	}

	log := logging.New(config.LogPath(baseDir), component)

	st, err := store.Open(config.DatabasePath(baseDir), log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize database")
		return nil, err
	}
	if _, err := st.ReconcileStaleWatchers(cmd.Context(), watcher.Alive); err != nil {
		// A failed sweep leaves orphaned claims behind but the hook
		// itself can still proceed.
		log.Warn().Err(err).Msg("stale watcher reconciliation failed")
	}

	sender := notify.NewNtfySender(notify.NtfyOptions{
		Topic: cfg.Notifications.NtfyTopic,
		Icon:  cfg.Notifications.NtfyIcon,
		Click: cfg.Notifications.NtfyClick,
	}, log)
	notifier := notify.NewNotifier(sender, notify.NewGate(cfg.WorkingHours, log), log)
	runner := &watcher.Runner{Store: st, Notifier: notifier, Log: log}

	return &app{
		baseDir:  baseDir,
		cfg:      cfg,
		store:    st,
		log:      log,
		notifier: notifier,
		runner:   runner,
		tracker:  hook.NewTracker(st, cfg, notifier, runner, log),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}
