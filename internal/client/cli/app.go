package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/client/client"
	"github.com/dmitrijs2005/trustvote/internal/client/config"
	"github.com/dmitrijs2005/trustvote/internal/client/enrichment"
	"github.com/dmitrijs2005/trustvote/internal/client/passport"
	"github.com/dmitrijs2005/trustvote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustvote/internal/client/services"
	"github.com/dmitrijs2005/trustvote/internal/client/session"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	// ModeLocal runs against the in-memory seeded store, no server involved.
	ModeLocal Mode = "local"
)

const pingTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	session    *session.Store
	views      *services.ViewState
	dispatcher *services.Dispatcher
	engine     *services.SyncEngine
	identity   *services.IdentityService
	voting     *services.VotingService
	gateway    *enrichment.Gateway
	passports  *passport.Service
	pinger     pinger
	device     string

	reader *bufio.Reader
	out    io.Writer

	closers []io.Closer
	done    chan struct{}

	modeMu sync.RWMutex
	mode   Mode
}

// deps are the outer resources an App is assembled from.
type deps struct {
	logger     logging.Logger
	session    *session.Store
	remote     store.Store
	pinger     pinger
	presigner  passport.Presigner
	cache      enrichment.Cache
	generator  enrichment.Generator
	rasterizer passport.Rasterizer
	device     string
	in         io.Reader
	out        io.Writer
}

// NewApp opens the local cache, connects to the server (unless offline) and
// wires the client services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, logCloser, err := logging.NewFile(c.LogFile, logging.ParseLevel(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	closers := []io.Closer{logCloser}
	fail := func(err error) (*App, error) {
		closeAll(closers)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return fail(err)
	}
	closers = append(closers, db)

	sess := session.NewSQLiteStore(db)
	device, err := sess.Fingerprint(ctx, session.LocalDeviceFingerprint)
	if err != nil {
		return fail(err)
	}

	d := deps{
		logger:  logger,
		session: sess,
		cache:   enrichment.NewKVCache(metadata.NewSQLiteRepository(db)),
		device:  device,
		in:      os.Stdin,
		out:     os.Stdout,
	}

	if c.Offline {
		d.remote = store.NewMemoryStore(models.SeedIdentities()...)
	} else {
		gc, err := client.NewTrustStoreClient(c.ServerEndpointAddr, device, c.CallTimeout)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, gc)
		d.remote, d.pinger, d.presigner = gc, gc, gc
	}

	if c.RedisURL != "" {
		rc, err := enrichment.NewRedisCache(c.RedisURL, 0)
		if err != nil {
			logger.Warn(ctx, "redis cache disabled", "error", err)
		} else {
			closers = append(closers, rc)
			d.cache = rc
		}
	}

	if c.GeminiAPIKey != "" {
		d.generator = enrichment.NewGeminiGenerator(c.GeminiAPIKey, c.GeminiModel, c.GeminiEndpoint)
	}
	if c.UseChrome {
		d.rasterizer = passport.NewChromeRasterizer()
	}

	a := newApp(c, d)
	a.closers = append(closers, a.closers...)
	return a, nil
}

func newApp(c *config.Config, d deps) *App {
	views := services.NewViewState()
	dispatcher := services.NewDispatcher(d.logger, 64)
	engine := services.NewSyncEngine(d.remote, d.session, d.logger, models.SeedIdentities())
	gateway := enrichment.NewGateway(d.generator, d.cache, c.EnrichmentRetryDelay, d.logger)

	a := &App{
		config:     c,
		logger:     d.logger,
		session:    d.session,
		views:      views,
		dispatcher: dispatcher,
		engine:     engine,
		identity:   services.NewIdentityService(d.remote, d.session, engine, dispatcher, views, gateway, d.device, d.logger),
		voting:     services.NewVotingService(d.remote, d.session, engine, dispatcher, views, c.VoteQuota, d.logger),
		gateway:    gateway,
		passports:  passport.NewService(gateway, d.rasterizer, d.presigner, c.PassportDir, d.device, d.logger),
		pinger:     d.pinger,
		device:     d.device,
		reader:     bufio.NewReader(d.in),
		out:        d.out,
		done:       make(chan struct{}),
		mode:       ModeOnline,
	}
	if d.pinger == nil {
		a.mode = ModeLocal
	}
	return a
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		_ = closers[i].Close()
	}
}

// Mode reports the current connectivity mode.
func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// setMode records mode and returns the previous one.
func (a *App) setMode(mode Mode) Mode {
	a.modeMu.Lock()
	prev := a.mode
	a.mode = mode
	a.modeMu.Unlock()

	if prev != mode {
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
	return prev
}

// Run loads the registry, settles the initial view and serves the REPL
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	handle := a.handle(ctx)
	snap := a.engine.Refresh(ctx, handle)
	a.views.Settle(handle != "")
	a.logger.Info(ctx, "client started", "identities", len(snap.Identities), "device", a.device, "mode", a.Mode())

	if a.pinger != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}
	go a.drainResults(ctx)

	a.printf("Welcome to trustvote (type 'help' for commands)\n")
	if handle != "" {
		a.printf("Welcome back, %s\n", handle)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close flushes pending remote writes and releases resources. Safe to call
// more than once.
func (a *App) Close() {
	select {
	case <-a.done:
		return
	default:
		close(a.done)
	}
	a.dispatcher.Close()
	closeAll(a.closers)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-a.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pingTimeout)
	err := a.pinger.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	// Refreshes are skipped while offline; catch up on reconnect.
	if a.setMode(ModeOnline) == ModeOffline {
		a.engine.Refresh(ctx, a.handle(ctx))
	}
}

// drainResults consumes background write outcomes. They never affect
// control flow.
func (a *App) drainResults(ctx context.Context) {
	for {
		select {
		case r, ok := <-a.dispatcher.Results():
			if !ok {
				return
			}
			a.logger.Debug(ctx, "remote write finished", "command", r.Name, "id", r.ID, "duration", r.Duration, "error", r.Err)
		case <-a.done:
			return
		}
	}
}

func (a *App) handle(ctx context.Context) string {
	h, err := a.session.Handle(ctx)
	if err != nil {
		a.logger.Warn(ctx, "read session", "error", err)
		return ""
	}
	return h
}

func (a *App) isLoggedIn() bool {
	return a.handle(context.Background()) != ""
}

func (a *App) status() string {
	handle := a.handle(context.Background())
	if handle == "" {
		return string(a.Mode())
	}
	return fmt.Sprintf("%s %s %d/%d", handle, a.Mode(), a.votesUsed(context.Background()), a.quota())
}

func (a *App) votesUsed(ctx context.Context) int {
	n, err := a.session.VoteCount(ctx)
	if err != nil {
		return 0
	}
	return n
}

func (a *App) quota() int {
	if a.config.VoteQuota <= 0 {
		return services.DefaultVoteQuota
	}
	return a.config.VoteQuota
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
