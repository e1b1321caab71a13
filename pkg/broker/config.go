package broker

import "github.com/knijam/jason/pkg/config"

// Config tunes consumers. Values come from the process environment.
type Config struct {
	PrefetchCount  int    `env:"RABBIT_PREFETCH_COUNT" envDefault:"10"`
	DurableQueues  bool   `env:"RABBIT_DURABLE_QUEUES" envDefault:"true"`
	RequeueOnError bool   `env:"RABBIT_REQUEUE_ON_ERROR" envDefault:"false"`
	ConsumerTag    string `env:"RABBIT_CONSUMER_TAG"`
}

// NewConsumerFromConfig builds a consumer for queue using the RabbitMixin
// fields of cfg and the tuning read from the environment. opts are applied
// after the tuning.
func NewConsumerFromConfig(cfg *config.Config, queue string, handler Handler, opts ...Option) (*Consumer, error) {
	url, err := URL(cfg)
	if err != nil {
		return nil, err
	}
	var tuning Config
	if err := config.Load(&tuning); err != nil {
		return nil, err
	}
	return NewConsumer(url, queue, handler, append([]Option{WithConfig(tuning)}, opts...)...), nil
}
