package jason

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/knijam/jason/pkg/broker"
	"github.com/knijam/jason/pkg/config"
	"github.com/knijam/jason/pkg/httpserver"
	"github.com/knijam/jason/pkg/logger"
	"github.com/knijam/jason/pkg/pg"
	"github.com/knijam/jason/pkg/redis"
	"github.com/knijam/jason/pkg/requestid"
	"github.com/knijam/jason/pkg/taskqueue"
)

// Names under which the Init methods register their extensions.
const (
	ExtPostgres  = "postgres"
	ExtRedis     = "redis"
	ExtCache     = "cache"
	ExtTaskQueue = "taskqueue"
	ExtConsumer  = "consumer"
)

// App is what a service's setup callback receives: the loaded config, a
// logger, a router and a registry of initialised integrations.
type App struct {
	name    string
	cfg     *config.Config
	log     *slog.Logger
	router  chi.Router
	testing bool

	mu         sync.RWMutex
	extensions map[string]any
	order      []string
	checks     []httpserver.Check
	consumers  []*broker.Consumer
	closers    []func() error
}

// NewApp builds an App around a loaded config. The router serves
// /healthz and /readyz, tags requests with a request ID and logs each one.
func NewApp(cfg *config.Config, log *slog.Logger, testing bool) *App {
	if log == nil {
		log = logger.Discard()
	}
	a := &App{
		name:       cfg.Name(),
		cfg:        cfg,
		log:        log,
		router:     chi.NewRouter(),
		testing:    testing,
		extensions: make(map[string]any),
	}
	a.router.Use(requestid.Middleware, httpserver.AccessLog(log))
	a.router.Get("/healthz", httpserver.HealthCheckHandler(log))
	a.router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		httpserver.HealthCheckHandler(log, a.Checks()...)(w, r)
	})
	return a
}

func (a *App) Name() string {
	return a.name
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) Router() chi.Router {
	return a.router
}

// Testing reports whether the app runs in debug/testing mode.
func (a *App) Testing() bool {
	return a.testing
}

// Register stores ext under name. Names are unique.
func (a *App) Register(name string, ext any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registerLocked([]string{name}, []any{ext})
}

// registerLocked stores every pair or none of them. a.mu must be held.
func (a *App) registerLocked(names []string, exts []any) error {
	for _, name := range names {
		if _, ok := a.extensions[name]; ok {
			return fmt.Errorf("%w: %q", ErrExtensionExists, name)
		}
	}
	for i, name := range names {
		a.extensions[name] = exts[i]
		a.order = append(a.order, name)
	}
	return nil
}

// initFailed logs why an integration could not start and returns err.
func (a *App) initFailed(ctx context.Context, component string, err error) error {
	attrs := []any{logger.Component(component), logger.Error(err)}
	var merr *config.MixinError
	if errors.As(err, &merr) {
		attrs = append(attrs, logger.Mixin(merr.Mixin))
	}
	a.log.ErrorContext(ctx, "integration not initialised", attrs...)
	return err
}

func (a *App) Extension(name string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ext, ok := a.extensions[name]
	return ext, ok
}

// Extensions lists registered names in registration order.
func (a *App) Extensions() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.order)
}

// AddCheck adds a readiness probe served on /readyz.
func (a *App) AddCheck(name string, fn func(context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checks = append(a.checks, httpserver.Check{Name: name, Fn: fn})
}

func (a *App) Checks() []httpserver.Check {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.checks)
}

// OnClose registers fn to run when the app closes, in reverse order.
func (a *App) OnClose(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// Close releases every initialised integration.
func (a *App) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for _, fn := range slices.Backward(closers) {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		a.log.Error("failed to release resources", logger.Errors(errs...))
	}
	return errors.Join(errs...)
}

func (a *App) Consumers() []*broker.Consumer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.consumers)
}

// InitPostgres connects to the database described by PostgresMixin and
// applies migrations when PG_MIGRATIONS_PATH is set. In testing mode it
// connects to TEST_DB_URL.
func (a *App) InitPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, err := pg.DSN(a.cfg, a.testing)
	if err != nil {
		return nil, a.initFailed(ctx, ExtPostgres, err)
	}
	var tuning pg.Config
	if err := config.Load(&tuning); err != nil {
		return nil, a.initFailed(ctx, ExtPostgres, err)
	}

	pool, err := pg.Connect(ctx, dsn, tuning)
	if err != nil {
		return nil, a.initFailed(ctx, ExtPostgres, err)
	}
	if err := pg.Migrate(ctx, pool, tuning, a.log); err != nil {
		pool.Close()
		return nil, a.initFailed(ctx, ExtPostgres, err)
	}
	if err := a.Register(ExtPostgres, pool); err != nil {
		pool.Close()
		return nil, a.initFailed(ctx, ExtPostgres, err)
	}

	a.AddCheck(ExtPostgres, pg.Healthcheck(pool))
	a.OnClose(func() error {
		pool.Close()
		return nil
	})
	a.log.InfoContext(ctx, "postgres initialised", logger.Component(ExtPostgres))
	return pool, nil
}

// InitRedis connects to the server described by RedisMixin and registers
// the client and a Cache prefixed with the app name.
func (a *App) InitRedis(ctx context.Context) (*goredis.Client, error) {
	url, err := redis.URL(a.cfg, nil)
	if err != nil {
		return nil, a.initFailed(ctx, ExtRedis, err)
	}
	var tuning redis.Config
	if err := config.Load(&tuning); err != nil {
		return nil, a.initFailed(ctx, ExtRedis, err)
	}

	client, err := redis.Connect(ctx, url, tuning)
	if err != nil {
		return nil, a.initFailed(ctx, ExtRedis, err)
	}
	cache := redis.NewCache(client, a.name+":", tuning)
	a.mu.Lock()
	err = a.registerLocked([]string{ExtRedis, ExtCache}, []any{client, cache})
	a.mu.Unlock()
	if err != nil {
		_ = client.Close()
		return nil, a.initFailed(ctx, ExtRedis, err)
	}

	a.AddCheck(ExtRedis, redis.Healthcheck(client))
	a.OnClose(client.Close)
	a.log.InfoContext(ctx, "redis initialised", logger.Component(ExtRedis))
	return client, nil
}

// InitTaskQueue resolves the task queue endpoints and registers them.
func (a *App) InitTaskQueue() (taskqueue.Endpoints, error) {
	endpoints, err := taskqueue.Resolve(a.cfg)
	if err != nil {
		return taskqueue.Endpoints{}, a.initFailed(context.Background(), ExtTaskQueue, err)
	}
	if err := a.Register(ExtTaskQueue, endpoints); err != nil {
		return taskqueue.Endpoints{}, a.initFailed(context.Background(), ExtTaskQueue, err)
	}
	a.log.Info("task queue initialised",
		logger.Component(ExtTaskQueue),
		slog.String("broker_backend", a.cfg.String(config.QueueBrokerBackend)),
		slog.String("results_backend", a.cfg.String(config.QueueResultsBackend)),
	)
	return endpoints, nil
}

// InitConsumer builds a consumer for queue from the RabbitMixin fields.
// The service runs registered consumers; see Service.Run.
func (a *App) InitConsumer(queue string, handler broker.Handler, opts ...broker.Option) (*broker.Consumer, error) {
	opts = append([]broker.Option{broker.WithLogger(a.log)}, opts...)
	c, err := broker.NewConsumerFromConfig(a.cfg, queue, handler, opts...)
	if err != nil {
		return nil, a.initFailed(context.Background(), ExtConsumer, err)
	}

	a.mu.Lock()
	name := ExtConsumer
	if len(a.consumers) > 0 {
		name = fmt.Sprintf("%s:%s", ExtConsumer, queue)
	}
	err = a.registerLocked([]string{name}, []any{c})
	if err == nil {
		a.consumers = append(a.consumers, c)
	}
	a.mu.Unlock()
	if err != nil {
		return nil, a.initFailed(context.Background(), ExtConsumer, err)
	}
	return c, nil
}
