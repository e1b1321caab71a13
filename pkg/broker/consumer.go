package broker

import (
	"context"
	"errors"
	"io"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/knijam/jason/pkg/logger"
)

// Handler processes one delivery. Returning nil acks it; an error nacks it.
type Handler func(ctx context.Context, d amqp.Delivery) error

// Channel is the part of *amqp.Channel a Consumer uses.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Dialer opens a channel and returns the connection to close with it.
type Dialer func(ctx context.Context, url string) (Channel, io.Closer, error)

// DialAMQP is the default Dialer.
func DialAMQP(_ context.Context, url string) (Channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn, nil
}

// Consumer reads one queue and dispatches each delivery to a Handler.
type Consumer struct {
	url     string
	queue   string
	handler Handler
	cfg     Config
	dial    Dialer
	log     *slog.Logger
}

// Option configures a Consumer.
type Option func(*Consumer)

func WithLogger(l *slog.Logger) Option {
	return func(c *Consumer) {
		if l != nil {
			c.log = l
		}
	}
}

func WithConfig(cfg Config) Option {
	return func(c *Consumer) { c.cfg = cfg }
}

// WithDialer replaces DialAMQP.
func WithDialer(d Dialer) Option {
	return func(c *Consumer) {
		if d != nil {
			c.dial = d
		}
	}
}

// NewConsumer builds a consumer for queue at url.
func NewConsumer(url, queue string, handler Handler, opts ...Option) *Consumer {
	c := &Consumer{
		url:     url,
		queue:   queue,
		handler: handler,
		cfg:     Config{PrefetchCount: 10, DurableQueues: true},
		dial:    DialAMQP,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Queue returns the consumed queue name.
func (c *Consumer) Queue() string {
	return c.queue
}

// Run declares the queue and handles deliveries until ctx ends, which is
// not an error. It fails when the broker closes the delivery channel.
func (c *Consumer) Run(ctx context.Context) error {
	if c.handler == nil {
		return ErrNilHandler
	}

	ch, conn, err := c.dial(ctx, c.url)
	if err != nil {
		return errors.Join(ErrConnectFailed, err)
	}
	defer func() {
		_ = ch.Close()
		if conn != nil {
			_ = conn.Close()
		}
	}()

	if c.cfg.PrefetchCount > 0 {
		if err := ch.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
			return errors.Join(ErrConsumeFailed, err)
		}
	}
	if _, err := ch.QueueDeclare(c.queue, c.cfg.DurableQueues, false, false, false, nil); err != nil {
		return errors.Join(ErrDeclareFailed, err)
	}
	deliveries, err := ch.Consume(c.queue, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return errors.Join(ErrConsumeFailed, err)
	}

	log := c.log.With(logger.Component("consumer"), slog.String("queue", c.queue))
	log.InfoContext(ctx, "consumer started")

	for {
		select {
		case <-ctx.Done():
			log.InfoContext(ctx, "consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesEnded
			}
			c.dispatch(ctx, log, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, log *slog.Logger, d amqp.Delivery) {
	if err := c.handler(ctx, d); err != nil {
		log.ErrorContext(ctx, "delivery failed",
			slog.Uint64("delivery_tag", d.DeliveryTag),
			logger.Error(err),
		)
		if nackErr := d.Nack(false, c.cfg.RequeueOnError); nackErr != nil {
			log.ErrorContext(ctx, "nack failed", logger.Error(nackErr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.ErrorContext(ctx, "ack failed", logger.Error(err))
	}
}
