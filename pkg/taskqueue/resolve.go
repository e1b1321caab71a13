package taskqueue

import (
	"fmt"

	"github.com/knijam/jason/pkg/broker"
	"github.com/knijam/jason/pkg/config"
	"github.com/knijam/jason/pkg/redis"
)

// Endpoints are the URLs a task queue client connects to.
type Endpoints struct {
	Broker  string
	Results string
}

// Resolve picks the broker and results URLs selected by the TaskQueueMixin
// fields. Each selected backend must be described by its own mixin.
func Resolve(cfg *config.Config) (Endpoints, error) {
	if err := cfg.Require(config.TaskQueueMixin, "task queue"); err != nil {
		return Endpoints{}, err
	}
	brokerURL, err := BackendURL(cfg, "task queue broker", cfg.String(config.QueueBrokerBackend))
	if err != nil {
		return Endpoints{}, err
	}
	resultsURL, err := BackendURL(cfg, "task queue results", cfg.String(config.QueueResultsBackend))
	if err != nil {
		return Endpoints{}, err
	}
	return Endpoints{Broker: brokerURL, Results: resultsURL}, nil
}

// BackendURL renders the URL of one backend. item names the consumer of the
// URL in capability errors. The redis backend selects the database given by
// QUEUE_REDIS_DATABASE_ID.
func BackendURL(cfg *config.Config, item, backend string) (string, error) {
	switch backend {
	case config.BackendRabbitMQ:
		if err := cfg.Require(config.RabbitMixin, item, "if backend is "+backend); err != nil {
			return "", err
		}
		return broker.Render(cfg), nil
	case config.BackendRedis:
		if err := cfg.Require(config.RedisMixin, item, "if backend is "+backend); err != nil {
			return "", err
		}
		db := cfg.Int(config.QueueRedisDatabaseID)
		return redis.Render(cfg, &db), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
