package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Khan-Yazdani04/devconnect-lite/config"
	"github.com/Khan-Yazdani04/devconnect-lite/handlers"
	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/metrics"
	"github.com/Khan-Yazdani04/devconnect-lite/middleware"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories/memstore"
	"github.com/Khan-Yazdani04/devconnect-lite/scheduler"
	"github.com/Khan-Yazdani04/devconnect-lite/services"
)

// Stores groups the persistence dependencies the app is built on.
type Stores struct {
	Projects services.ProjectStore
	Bids     services.BidStore
	Users    middleware.UserResolver
	Health   handlers.Pinger
	Close    func(ctx context.Context) error
}

// MemoryStores backs every store with a single in-memory Store.
func MemoryStores(s *memstore.Store) Stores {
	return Stores{Projects: s, Bids: s, Users: s, Health: s, Close: s.Close}
}

func mongoStores(m *repositories.Mongo) Stores {
	return Stores{Projects: m.Projects, Bids: m.Bids, Users: m.Users, Health: m, Close: m.Close}
}

type Builder struct {
	cfg           *config.Config
	ensureIndexes bool
	stores        *Stores
	metrics       *metrics.Metrics
	clock         services.Clock
	scheduler     *scheduler.Scheduler
	server        *http.Server
}

type BuilderOption func(*Builder)

func NewBuilder(cfg *config.Config, options ...BuilderOption) *Builder {
	builder := &Builder{
		cfg:           cfg,
		ensureIndexes: true,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithEnsureIndexes(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.ensureIndexes = enabled
	}
}

func WithStores(stores Stores) BuilderOption {
	return func(b *Builder) {
		b.stores = &stores
	}
}

func WithMetrics(m *metrics.Metrics) BuilderOption {
	return func(b *Builder) {
		b.metrics = m
	}
}

func WithClock(clock services.Clock) BuilderOption {
	return func(b *Builder) {
		b.clock = clock
	}
}

func WithScheduler(s *scheduler.Scheduler) BuilderOption {
	return func(b *Builder) {
		b.scheduler = s
	}
}

func WithHTTPServer(server *http.Server) BuilderOption {
	return func(b *Builder) {
		b.server = server
	}
}

// Build wires config, stores, services, handlers and the HTTP server in that
// order.
func (b *Builder) Build(ctx context.Context) (*App, error) {
	if b.cfg == nil {
		return nil, errors.New("config is required")
	}

	app := &App{Config: b.cfg, serverErr: make(chan error, 1)}

	if b.metrics == nil {
		b.metrics = metrics.New()
	}
	app.Metrics = b.metrics

	if b.stores == nil {
		stores, err := b.openStores(ctx)
		if err != nil {
			return nil, err
		}
		b.stores = &stores
	}
	app.Stores = *b.stores

	app.Projects = services.NewProjectService(app.Stores.Projects, app.Stores.Bids, app.Metrics)
	if b.clock != nil {
		app.Projects.WithClock(b.clock)
	}
	app.Sweeper = services.NewSweepService(app.Stores.Projects, app.Stores.Bids, app.Metrics)

	if b.scheduler == nil {
		b.scheduler = scheduler.New(b.cfg.Sweep.Cron, app.Sweeper)
	}
	app.Scheduler = b.scheduler

	if b.server == nil {
		b.server = &http.Server{
			Addr:              ":" + b.cfg.Server.Port,
			Handler:           b.handler(app),
			ReadTimeout:       b.cfg.Server.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      b.cfg.Server.WriteTimeout,
		}
	}
	app.Server = b.server

	return app, nil
}

func (b *Builder) openStores(ctx context.Context) (Stores, error) {
	switch b.cfg.Store.Backend {
	case config.StoreMemory:
		logging.Logger.Warn("Event ID: STORE_MEMORY, Description: Using the in-memory store; data is lost on restart")
		return MemoryStores(memstore.New()), nil
	case config.StoreMongo:
		m, err := repositories.Connect(ctx, b.cfg.Mongo, b.cfg.Breaker)
		if err != nil {
			return Stores{}, err
		}
		if b.ensureIndexes {
			if err := repositories.EnsureIndexes(ctx, m.DB); err != nil {
				_ = m.Close(context.Background())
				return Stores{}, err
			}
		}
		return mongoStores(m), nil
	default:
		return Stores{}, fmt.Errorf("unknown store backend %q", b.cfg.Store.Backend)
	}
}

// handler builds the router. Request id, recovery, CORS and rate limiting wrap
// the router so they also apply to unmatched paths and preflight requests;
// metrics run inside it to see the matched route.
func (b *Builder) handler(app *App) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Metrics(app.Metrics))

	router.HandleFunc("/health", handlers.NewHealthHandler(app.Stores.Health, b.cfg.Log.Service, b.cfg.App.Version).Health).Methods(http.MethodGet)
	router.Handle("/metrics", app.Metrics.Handler()).Methods(http.MethodGet)

	auth := middleware.NewAuthenticator(b.cfg.Auth.JWTSecret, app.Stores.Users)
	handlers.RegisterRoutes(router, b.cfg.Server.APIPrefix, handlers.NewProjectHandler(app.Projects), auth.Middleware)

	limiter := middleware.NewRateLimiter(b.cfg.RateLimit)
	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.CORS(b.cfg.Server.CORSOrigin)(h)
	h = middleware.Recover(h)
	h = middleware.RequestID(h)
	return h
}
