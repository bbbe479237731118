// Package bootstrap wires settings, logging, storage and the bound APIs
// together for both the desktop shell and gorgonctl.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/AreteDriver/Gorgon/internal/commands"
	"github.com/AreteDriver/Gorgon/internal/config"
	"github.com/AreteDriver/Gorgon/internal/files"
	"github.com/AreteDriver/Gorgon/internal/git"
	"github.com/AreteDriver/Gorgon/internal/git/client"
	"github.com/AreteDriver/Gorgon/internal/logging"
	"github.com/AreteDriver/Gorgon/internal/notify"
	"github.com/AreteDriver/Gorgon/internal/pathguard"
	"github.com/AreteDriver/Gorgon/internal/storage"
	"github.com/AreteDriver/Gorgon/internal/storage/catalog"
	"github.com/AreteDriver/Gorgon/internal/storage/migrate"
	"github.com/AreteDriver/Gorgon/internal/storage/sqlite"
	"github.com/AreteDriver/Gorgon/internal/ui"
	"github.com/AreteDriver/Gorgon/internal/workspaces"
)

type Options struct {
	// DataDir overrides the per-user data directory.
	DataDir string
	// SettingsPath overrides <DataDir>/settings.yaml.
	SettingsPath string
	// LogLevel, when set, wins over the settings file and environment.
	LogLevel string
	// Console receives log output; defaults to stderr.
	Console io.Writer
	// DisableLogFile keeps logs on the console only.
	DisableLogFile bool
	// AppContext yields the window context once the shell has started.
	AppContext func() context.Context
	// Notifier replaces the native notification backend.
	Notifier notify.Notifier
	// Credentials replaces the ssh-agent credential provider.
	Credentials client.CredentialProvider
}

// Runtime holds every long-lived component. Close releases them.
type Runtime struct {
	Settings config.Settings
	DataDir  string
	Logger   logging.Logger

	Files      *files.API
	Git        *git.API
	Notify     *notify.API
	UI         *ui.API
	Workspaces *workspaces.API
	Commands   *commands.Registry

	db      *sql.DB
	closers []io.Closer
}

func New(opts Options) (*Runtime, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = storage.DataDir(); err != nil {
			return nil, err
		}
	}
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = storage.SettingsPath(dataDir)
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.LogLevel != "" {
		settings.Log.Level = opts.LogLevel
	}
	level, err := logging.ParseLevel(settings.Log.Level)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Settings: settings, DataDir: dataDir}

	logFile := ""
	if !opts.DisableLogFile {
		logFile = settings.Log.File
		if logFile == "" {
			logFile = storage.LogPath(dataDir)
		}
	}
	logger, logCloser, err := logging.Tee(opts.Console, settings.Log.Format, logFile, level, logging.Rotation{
		MaxSizeMB:  settings.Log.MaxSizeMB,
		MaxBackups: settings.Log.MaxBackups,
		MaxAgeDays: settings.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt.Logger = logger
	rt.closers = append(rt.closers, logCloser)

	db, err := sqlite.Open(storage.CatalogPath(dataDir))
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.db = db
	rt.closers = append(rt.closers, db)
	if err := migrate.Up(db); err != nil {
		_ = rt.Close()
		return nil, err
	}

	guard := pathguard.New(settings.Files.BlockedPatterns...)
	creds := opts.Credentials
	if creds == nil {
		creds = client.SSHAgent{
			User:            settings.Git.SSHUser,
			KnownHostsFiles: settings.Git.KnownHostsFiles,
			PinnedHostKeys:  settings.Git.PinnedHostKeys,
		}
	}
	gitClient := client.New(creds,
		client.WithDefaultRemote(settings.Git.DefaultRemote),
		client.WithLogger(logging.With(logger, "component", "git")),
	)
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Native{}
	}

	rt.Files = files.NewAPI(files.NewService(guard), logger)
	rt.Git = git.NewAPI(gitClient, settings.Git.LogCount, logger)
	rt.Notify = notify.NewAPI(notifier, settings.Notifications.NotificationsEnabled(), logger)
	rt.UI = ui.NewAPI(opts.AppContext, logger)
	rt.Workspaces = workspaces.NewAPI(
		workspaces.NewService(catalog.NewRepository(db), guard, gitClient, logging.With(logger, "component", "workspaces")),
		logger,
	)
	rt.Commands = commands.New(commands.Surface{
		Files:      rt.Files,
		Git:        rt.Git,
		Notify:     rt.Notify,
		UI:         rt.UI,
		Workspaces: rt.Workspaces,
	})

	logger.Info("runtime ready", "dataDir", dataDir, "settings", settingsPath, "commands", len(rt.Commands.Names()))
	return rt, nil
}

// Bindings is the list handed to the desktop shell for IPC binding.
func (r *Runtime) Bindings() []interface{} {
	return []interface{}{r.Files, r.Git, r.Notify, r.UI, r.Workspaces}
}

// Close releases resources in reverse order of acquisition.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
