package httpserver

import (
	"net"
	"strconv"
	"time"

	"github.com/knijam/jason/pkg/config"
)

// Timeouts tunes the listener. Values come from the process environment.
type Timeouts struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Options converts non-zero timeouts into server options.
func (t Timeouts) Options() []Option {
	opts := make([]Option, 0, 4)
	if t.ReadTimeout > 0 {
		opts = append(opts, WithReadTimeout(t.ReadTimeout))
	}
	if t.WriteTimeout > 0 {
		opts = append(opts, WithWriteTimeout(t.WriteTimeout))
	}
	if t.IdleTimeout > 0 {
		opts = append(opts, WithIdleTimeout(t.IdleTimeout))
	}
	if t.ShutdownTimeout > 0 {
		opts = append(opts, WithShutdownTimeout(t.ShutdownTimeout))
	}
	return opts
}

// Addr joins SERVE_HOST and SERVE_PORT.
func Addr(cfg *config.Config) (string, error) {
	if err := cfg.Require(config.ServiceMixin, "the HTTP server"); err != nil {
		return "", err
	}
	return net.JoinHostPort(cfg.String(config.ServeHost), strconv.FormatInt(cfg.Int(config.ServePort), 10)), nil
}

// NewFromConfig builds a Server listening on the address described by the
// ServiceMixin fields of cfg. Timeouts are read from the environment; opts
// are applied last.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Server, error) {
	addr, err := Addr(cfg)
	if err != nil {
		return nil, err
	}
	var t Timeouts
	if err := config.Load(&t); err != nil {
		return nil, err
	}

	all := append([]Option{WithAddr(addr)}, t.Options()...)
	return New(append(all, opts...)...), nil
}
