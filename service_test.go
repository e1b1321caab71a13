package jason_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knijam/jason"
	"github.com/knijam/jason/pkg/broker"
	"github.com/knijam/jason/pkg/config"
	"github.com/knijam/jason/pkg/props"
)

func definition() *config.Definition {
	return config.Define("orders", []props.Field{
		props.Named("ORDER_PREFIX", props.String(props.Default("ORD"))),
		props.Named("API_KEY", props.Password(props.Nullable())),
	}, config.ServiceMixin, config.RabbitMixin)
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	return port
}

func TestServicePrepare(t *testing.T) {
	t.Parallel()

	t.Run("setup receives loaded app", func(t *testing.T) {
		t.Parallel()
		var gotDebug bool
		svc := jason.NewService(definition(), func(app *jason.App, debug bool) error {
			gotDebug = debug
			return app.Register("orders", app.Config().String("ORDER_PREFIX"))
		}, jason.WithSource(config.MapSource(map[string]string{"ORDER_PREFIX": "X"})), jason.WithLogOutput(io.Discard))

		app, err := svc.TestApp(nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = app.Close() })
		assert.True(t, gotDebug)
		assert.True(t, app.Testing())
		ext, _ := app.Extension("orders")
		assert.Equal(t, "X", ext)
	})

	t.Run("overrides win over source", func(t *testing.T) {
		t.Parallel()
		svc := jason.NewService(definition(), nil,
			jason.WithSource(config.MapSource(map[string]string{"ORDER_PREFIX": "X"})), jason.WithLogOutput(io.Discard))
		app, err := svc.TestApp(map[string]any{"ORDER_PREFIX": "Y"})
		require.NoError(t, err)
		assert.Equal(t, "Y", app.Config().String("ORDER_PREFIX"))
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		svc := jason.NewService(definition(), nil,
			jason.WithSource(config.MapSource(map[string]string{"SERVE_PORT": "http"})), jason.WithLogOutput(io.Discard))
		_, err := svc.Prepare(jason.RunOptions{})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("setup failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		svc := jason.NewService(definition(), func(*jason.App, bool) error { return boom },
			jason.WithSource(config.MapSource(nil)), jason.WithLogOutput(io.Discard))
		_, err := svc.Prepare(jason.RunOptions{})
		assert.ErrorIs(t, err, jason.ErrSetupFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil definition", func(t *testing.T) {
		t.Parallel()
		_, err := jason.NewService(nil, nil).Prepare(jason.RunOptions{})
		assert.ErrorIs(t, err, jason.ErrNilDefinition)
	})

	t.Run("logger mode", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		svc := jason.NewService(definition(), func(app *jason.App, _ bool) error {
			app.Logger().Debug("wiring")
			return nil
		}, jason.WithSource(config.MapSource(nil)), jason.WithLogOutput(buf))

		_, err := svc.Prepare(jason.RunOptions{Debug: true})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "msg=wiring")
		assert.Contains(t, buf.String(), "service=orders")
	})
}

func TestServiceCommands(t *testing.T) {
	t.Parallel()
	svc := jason.NewService(definition(), func(app *jason.App, _ bool) error {
		return errors.Join(app.Register("mailer", nil), app.Register("search", nil))
	}, jason.WithSource(config.MapSource(map[string]string{"API_KEY": "secret"})), jason.WithLogOutput(io.Discard))

	dump, err := svc.ConfigDump(jason.RunOptions{Overrides: map[string]any{"SERVE_PORT": int64(9000)}})
	require.NoError(t, err)
	assert.Contains(t, dump, "SERVE=true\n")
	assert.Contains(t, dump, "SERVE_PORT=9000\n")
	assert.Contains(t, dump, "API_KEY=********")
	assert.NotContains(t, dump, "secret")

	exts, err := svc.Extensions(jason.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "mailer\nsearch", exts)
}

type closedChannel struct {
	deliveries chan amqp.Delivery
}

func (c *closedChannel) Qos(int, int, bool) error { return nil }

func (c *closedChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, nil
}

func (c *closedChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliveries, nil
}

func (c *closedChannel) Close() error { return nil }

func TestServiceRun(t *testing.T) {
	t.Parallel()

	t.Run("nothing to run", func(t *testing.T) {
		t.Parallel()
		svc := jason.NewService(definition(), nil,
			jason.WithSource(config.MapSource(map[string]string{"SERVE": "false"})), jason.WithLogOutput(io.Discard))
		assert.NoError(t, svc.Run(context.Background(), jason.RunOptions{}))
		assert.NoError(t, svc.Run(context.Background(), jason.RunOptions{NoServe: true, Overrides: map[string]any{"SERVE": true}}))
	})

	t.Run("serves until cancelled", func(t *testing.T) {
		t.Parallel()
		port := freePort(t)
		var consumed atomic.Bool
		deliveries := make(chan amqp.Delivery)
		dialer := func(context.Context, string) (broker.Channel, io.Closer, error) {
			return &closedChannel{deliveries: deliveries}, nil, nil
		}

		svc := jason.NewService(definition(), func(app *jason.App, _ bool) error {
			app.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("pong"))
			})
			_, err := app.InitConsumer("jobs", func(context.Context, amqp.Delivery) error {
				consumed.Store(true)
				return nil
			}, broker.WithDialer(dialer))
			return err
		}, jason.WithSource(config.MapSource(map[string]string{
			"SERVE_HOST": "127.0.0.1",
			"SERVE_PORT": port,
		})), jason.WithLogOutput(io.Discard))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- svc.Run(ctx, jason.RunOptions{}) }()

		var resp *http.Response
		var err error
		for range 50 {
			resp, err = http.Get("http://127.0.0.1:" + port + "/ping")
			if err == nil {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, "pong", string(body))

		deliveries <- amqp.Delivery{Acknowledger: noopAcker{}, DeliveryTag: 1}
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			require.Fail(t, "service did not stop")
		}
		assert.True(t, consumed.Load())
	})

	t.Run("consumer failure stops the service", func(t *testing.T) {
		t.Parallel()
		deliveries := make(chan amqp.Delivery)
		close(deliveries)
		svc := jason.NewService(definition(), func(app *jason.App, _ bool) error {
			_, err := app.InitConsumer("jobs", func(context.Context, amqp.Delivery) error { return nil },
				broker.WithDialer(func(context.Context, string) (broker.Channel, io.Closer, error) {
					return &closedChannel{deliveries: deliveries}, nil, nil
				}))
			return err
		}, jason.WithSource(config.MapSource(map[string]string{"SERVE_PORT": "1"})), jason.WithLogOutput(io.Discard))

		err := svc.Run(context.Background(), jason.RunOptions{NoServe: true})
		assert.ErrorIs(t, err, broker.ErrDeliveriesEnded)
	})
}

type noopAcker struct{}

func (noopAcker) Ack(uint64, bool) error        { return nil }
func (noopAcker) Nack(uint64, bool, bool) error { return nil }
func (noopAcker) Reject(uint64, bool) error     { return nil }
