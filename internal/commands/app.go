package commands

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/gauge/internal/config"
	"github.com/balkashynov/gauge/internal/db"
	"github.com/balkashynov/gauge/internal/session"
)

// App bundles everything a command needs for one invocation
type App struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Ctrl   *session.Controller
}

// openApp loads config, opens the database and builds the controller over the stored state
func openApp() (*App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	conn, err := db.Open(cfg.DBPath())
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	gw := db.NewGateway(db.NewSQLiteStore(conn), db.WithLogger(log))
	tasks, history, err := gw.Load()
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	ctrl := session.New(tasks, history, gw,
		session.WithLogger(log),
		session.WithDefaults(cfg.DefaultTag, cfg.DefaultFocusGoal),
	)

	log.Debug("app opened", zap.String("db", cfg.DBPath()))
	return &App{Config: cfg, Log: log, DB: conn, Ctrl: ctrl}, nil
}

// Close stops the ledger timer and releases the database
func (a *App) Close() {
	a.Ctrl.Close()
	if err := db.Close(a.DB); err != nil {
		a.Log.Error("failed to close database", zap.Error(err))
	}
	_ = a.Log.Sync()
}

// newLogger returns a debug development logger when verbose, otherwise a
// production logger at level
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	return cfg.Build()
}
