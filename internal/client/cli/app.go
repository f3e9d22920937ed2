// Package cli implements the interactive terminal client. It talks to the
// application core directly: local record store, session pointer, identity
// gate, oracle-backed forecasts and the mock calendar.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/socialbattery/internal/calendar"
	"github.com/dmitrijs2005/socialbattery/internal/client/config"
	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/forecast"
	"github.com/dmitrijs2005/socialbattery/internal/identity"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/oracle"
	"github.com/dmitrijs2005/socialbattery/internal/session"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    store.Store
	sessions *session.Manager
	gate     *identity.Gate
	client   *forecast.Client
	cache    *forecast.Cache
	provider calendar.Provider
	notifier *calendar.Notifier
	reader   *bufio.Reader

	mu       sync.Mutex
	current  *models.UserRecord
	pending  []models.HazardEvent
	mode     identity.AuthMode
	inFlight bool
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	st, err := store.NewFileStore(c.DataDir, common.UsersBlobName+".json")
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	kv, err := newSessionKV(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("session init error: %w", err)
	}

	o, err := oracle.NewGeminiOracle(ctx, c.GeminiAPIKey, c.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("oracle init error: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger,
		store:    st,
		sessions: session.NewManager(kv, st),
		gate:     identity.NewGate(st, o, logger),
		client:   forecast.NewClient(o, logger),
		cache:    forecast.NewCache(st),
		provider: calendar.NewMockGoogleProvider(),
		notifier: calendar.NewNotifier(c.NotifyDelay),
		reader:   bufio.NewReader(os.Stdin),
		mode:     identity.InitialMode,
	}, nil
}

func newSessionKV(ctx context.Context, c *config.Config) (session.KV, error) {
	switch c.SessionBackend {
	case config.SessionFile:
		return session.NewFileKV(filepath.Join(c.DataDir, "session"))
	case config.SessionSqlite:
		return session.NewSqliteKV("file:" + filepath.Join(c.DataDir, "session.db"))
	case config.SessionRedis:
		return session.NewRedisKV(ctx, c.RedisAddr, c.RedisPassword, 0)
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current != nil
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case a.inFlight:
		return "consulting the oracle..."
	case a.current != nil:
		return a.current.Identifier
	default:
		return string(a.mode)
	}
}

// signIn installs record as the active identity and persists the session
// pointer.
func (a *App) signIn(ctx context.Context, record *models.UserRecord) error {
	if err := a.sessions.Activate(ctx, record.Identifier); err != nil {
		return err
	}

	a.mu.Lock()
	a.current = record
	a.mode = identity.ModeAuthenticated
	a.mu.Unlock()
	return nil
}

// Resume restores a previous session, if any, and redisplays the cached
// forecast.
func (a *App) Resume(ctx context.Context) {
	record, err := a.sessions.Resume(ctx)
	if err != nil || record == nil {
		return
	}

	a.mu.Lock()
	a.current = record
	a.mode = identity.ModeAuthenticated
	a.mu.Unlock()

	printlnFn("Welcome back,", record.Identifier)
	if record.LastForecast != nil {
		printForecast(record.LastForecast)
	}
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	a.current = nil
	a.pending = nil
	a.mode = identity.InitialMode
	a.mu.Unlock()

	printlnFn("Session cleared. The outside world is once again your problem.")
	return nil
}

func (a *App) Run(ctx context.Context) {
	a.Resume(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
