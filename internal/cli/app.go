// Package cli wires the tabmatch use cases for the command line.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/cli/styles"
	"github.com/bnema/tabmatch/internal/domain/build"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/infrastructure/config"
	"github.com/bnema/tabmatch/internal/infrastructure/metrics"
	"github.com/bnema/tabmatch/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabmatch/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info
	db        *sqlite.LazyDB
	Sessions  repository.SessionStateRepository
	Recorder  *metrics.Recorder

	// Use cases
	FindSimilarUC  *usecase.FindSimilarTabUseCase
	SaveSessionUC  *usecase.SaveSessionUseCase
	ListSessionsUC *usecase.ListSessionsUseCase
	DeleteUC       *usecase.DeleteSessionUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// Options override config values from the command line.
type Options struct {
	ConfigFile string
	LogLevel   string
}

// NewApp creates a new CLI application with all dependencies.
// The database is opened on first use, so commands that only score
// explicit candidates never touch it.
func NewApp(opts Options) (*App, error) {
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(logLevel),
			Format:     cfg.Logging.Format,
			TimeFormat: logging.ConsoleTimeFormat,
		},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			LogDir:        cfg.Logging.LogDir,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAge,
			WriteToStderr: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	sessions := sqlite.NewLazySessionStateRepository(db)
	recorder := metrics.NewRecorder()

	logger.Debug().Str("db_path", db.Path()).Msg("app initialized")

	return &App{
		Config:         cfg,
		Theme:          styles.NewTheme(),
		db:             db,
		Sessions:       sessions,
		Recorder:       recorder,
		FindSimilarUC:  usecase.NewFindSimilarTabUseCase(sessions, recorder),
		SaveSessionUC:  usecase.NewSaveSessionUseCase(sessions),
		ListSessionsUC: usecase.NewListSessionsUseCase(sessions),
		DeleteUC:       usecase.NewDeleteSessionUseCase(sessions),
		ctx:            logging.WithComponent(ctx, "cli"),
		logCleanup:     logCleanup,
	}, nil
}

// Close flushes metrics and releases all resources.
func (a *App) Close() error {
	log := logging.FromContext(a.ctx)

	if path := a.Config.Metrics.TextfilePath; path != "" && a.Recorder != nil {
		if err := a.Recorder.WriteTextfile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to write metrics textfile")
		}
	}

	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

func loadConfig(path string) (*config.Config, error) {
	var (
		mgr *config.Manager
		err error
	)
	if path != "" {
		mgr, err = config.NewManagerWithFile(path)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return mgr.Get(), nil
}

// SchemaVersion opens the database and returns its migration version.
func (a *App) SchemaVersion() (int64, error) {
	db, err := a.db.DB(a.ctx)
	if err != nil {
		return 0, err
	}
	return sqlite.GetMigrationStatus(a.ctx, db)
}
