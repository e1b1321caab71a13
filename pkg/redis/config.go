package redis

import "time"

// Config tunes connection retries. The URL comes from the application
// config; see URL.
type Config struct {
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	ScanBatchSize  int64         `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"1000"`
}
