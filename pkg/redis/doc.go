// Package redis connects a service to Redis with go-redis.
//
// URL renders the connection URL from a config that includes
// config.RedisMixin; the task queue reuses it with a database index.
// Connect retries until the server answers:
//
//	url, err := redis.URL(cfg, nil)
//	if err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, url, tuning)
//
// Cache is a small prefixed key-value store registered by the service as
// its "cache" extension. Healthcheck adapts a client to a readiness probe.
package redis
