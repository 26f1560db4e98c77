package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"gdict/internal/apiclient"
	"gdict/internal/config"
	"gdict/internal/database"
	"gdict/internal/logger"
	"gdict/internal/render"
	"gdict/internal/repository"
	"gdict/internal/session"
	"gdict/internal/speech"
	"gdict/internal/state"
)

// app holds everything a command needs
type app struct {
	cfg      *config.ClientConfig
	logger   *logger.Logger
	db       *sql.DB
	state    *state.AppState
	session  *session.Controller
	renderer *render.Renderer
	speaker  speech.Speaker
}

// newApp loads configuration, opens the state database and wires the session
func newApp(ctx context.Context, verbose bool) (*app, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if !verbose && os.Getenv("LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger.Initialize(cfg.Logging)
	appLogger := logger.Default()

	store, db := openStore(ctx, cfg.StatePath, appLogger)
	appState := state.New(
		store,
		appLogger,
		state.WithDarkPreference(state.DarkPreferenceProbe(cfg.ColorScheme)),
	)
	if err := appState.Load(ctx); err != nil {
		// legacy data stays in place and is migrated again on the next start
		appLogger.Warn("State loaded with errors: %v", err)
	}

	client := apiclient.New(cfg.APIURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(appLogger),
	)

	return &app{
		cfg:      cfg,
		logger:   appLogger,
		db:       db,
		state:    appState,
		session:  session.NewController(client, appState, appLogger),
		renderer: render.NewRenderer(),
		speaker:  speech.Probe(),
	}, nil
}

// warnPersist reports a failed state write without failing the command
func (a *app) warnPersist(err error) {
	if err != nil {
		a.logger.Warn("Change not saved: %v", err)
	}
}

func isPersistErr(err error) bool {
	return errors.Is(err, state.ErrPersist)
}

// openStore opens the durable state store. When the database cannot be opened
// the session runs on an in-memory store and nothing is saved.
func openStore(ctx context.Context, path string, log *logger.Logger) (state.Store, *sql.DB) {
	log.Debug("Opening state database: %s", path)
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		log.Warn("State database unavailable, changes will not be saved: %v", err)
		return repository.NewMemoryKV(), nil
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		log.Warn("State database migration failed, changes will not be saved: %v", err)
		return repository.NewMemoryKV(), nil
	}
	if applied > 0 {
		log.Info("Applied %d state migrations", applied)
	}

	return repository.NewKVRepository(db, log), db
}

// Close releases the state database. It is safe to call more than once.
func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
