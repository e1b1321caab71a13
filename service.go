package jason

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/knijam/jason/pkg/config"
	"github.com/knijam/jason/pkg/httpserver"
	"github.com/knijam/jason/pkg/logger"
	"github.com/knijam/jason/pkg/requestid"
)

// SetupFunc wires routes and integrations into a freshly built App.
type SetupFunc func(app *App, debug bool) error

// RunOptions mirror the service command line.
type RunOptions struct {
	// Debug enables text debug logging and testing mode.
	Debug bool
	// NoServe skips the HTTP listener even when SERVE is true.
	NoServe bool
	// Overrides take precedence over every config source.
	Overrides map[string]any
}

// Service loads a config definition, builds an App and runs it.
type Service struct {
	def     *config.Definition
	setup   SetupFunc
	source  config.Source
	output  io.Writer
	logOpts []logger.Option
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSource replaces the process environment as config source.
func WithSource(src config.Source) ServiceOption {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithLogOutput sets where the service logs. Defaults to stdout.
func WithLogOutput(w io.Writer) ServiceOption {
	return func(s *Service) {
		if w != nil {
			s.output = w
		}
	}
}

// WithLoggerOptions appends logger options applied after the mode defaults.
func WithLoggerOptions(opts ...logger.Option) ServiceOption {
	return func(s *Service) { s.logOpts = append(s.logOpts, opts...) }
}

// NewService creates a service for def. setup may be nil.
func NewService(def *config.Definition, setup SetupFunc, opts ...ServiceOption) *Service {
	s := &Service{
		def:    def,
		setup:  setup,
		source: config.EnvSource(),
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare loads the config, builds the App and runs setup.
// The caller owns the returned App and must Close it.
func (s *Service) Prepare(opts RunOptions) (*App, error) {
	if s.def == nil {
		return nil, ErrNilDefinition
	}
	cfg, err := s.def.LoadFrom(s.source, opts.Overrides)
	if err != nil {
		return nil, err
	}

	app := NewApp(cfg, s.logger(opts.Debug), opts.Debug)
	if s.setup != nil {
		if err := s.setup(app, opts.Debug); err != nil {
			return nil, errors.Join(ErrSetupFailed, err, app.Close())
		}
	}
	return app, nil
}

func (s *Service) logger(debug bool) *slog.Logger {
	name := s.def.Name()
	opts := []logger.Option{
		logger.WithOutput(s.output),
		logger.WithContextExtractors(requestid.LoggerExtractor),
	}
	if debug {
		opts = append(opts, logger.WithDebug(name))
	} else {
		opts = append(opts, logger.WithRelease(name))
	}
	return logger.New(append(opts, s.logOpts...)...)
}

// Run prepares the app and blocks until ctx ends or a component fails.
//
// The HTTP listener runs when the config includes ServiceMixin, SERVE is
// true and NoServe is false. Registered consumers run alongside it, or on
// their own when nothing is served. Without either Run returns once setup
// is done.
func (s *Service) Run(ctx context.Context, opts RunOptions) error {
	app, err := s.Prepare(opts)
	if err != nil {
		return err
	}
	// Close logs its own failures
	defer func() { _ = app.Close() }()

	cfg := app.Config()
	serve := !opts.NoServe && cfg.Requires(config.ServiceMixin) && cfg.Bool(config.Serve)
	consumers := app.Consumers()
	if !serve && len(consumers) == 0 {
		app.Logger().InfoContext(ctx, "nothing to run")
		return nil
	}

	// the first component to stop, with or without an error, stops the rest
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	if serve {
		srv, err := httpserver.NewFromConfig(cfg, httpserver.WithLogger(app.Logger()))
		if err != nil {
			return err
		}
		g.Go(func() error {
			defer cancel()
			return srv.Run(ctx, app.Router())
		})
	}
	for _, c := range consumers {
		g.Go(func() error {
			defer cancel()
			return c.Run(ctx)
		})
	}
	return g.Wait()
}

// TestApp prepares the app in debug mode without serving.
func (s *Service) TestApp(overrides map[string]any) (*App, error) {
	return s.Prepare(RunOptions{Debug: true, NoServe: true, Overrides: overrides})
}

// ConfigDump renders the loaded config as KEY=value lines.
func (s *Service) ConfigDump(opts RunOptions) (string, error) {
	app, err := s.Prepare(opts)
	if err != nil {
		return "", err
	}
	defer func() { _ = app.Close() }()
	return app.Config().Dump(), nil
}

// Extensions lists the extensions registered by setup, one per line.
func (s *Service) Extensions(opts RunOptions) (string, error) {
	app, err := s.Prepare(opts)
	if err != nil {
		return "", err
	}
	defer func() { _ = app.Close() }()
	return strings.Join(app.Extensions(), "\n"), nil
}
