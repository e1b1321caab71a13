package config

import "github.com/knijam/jason/pkg/props"

// Mixin is a named group of fields an integration depends on.
// A definition that includes a mixin, or declares all of its field names,
// provides that capability.
type Mixin struct {
	Name   string
	Fields []props.Field
}

// Names returns the mixin's field names in order.
func (m Mixin) Names() []string {
	out := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		out[i] = f.Name
	}
	return out
}

// Field names of the built-in mixins.
const (
	Serve     = "SERVE"
	ServeHost = "SERVE_HOST"
	ServePort = "SERVE_PORT"

	TestDBURL = "TEST_DB_URL"
	DBDriver  = "DB_DRIVER"
	DBHost    = "DB_HOST"
	DBPort    = "DB_PORT"
	DBUser    = "DB_USER"
	DBPass    = "DB_PASS"

	RedisDriver = "REDIS_DRIVER"
	RedisHost   = "REDIS_HOST"
	RedisPort   = "REDIS_PORT"
	RedisPass   = "REDIS_PASS"

	RabbitDriver = "RABBIT_DRIVER"
	RabbitHost   = "RABBIT_HOST"
	RabbitPort   = "RABBIT_PORT"
	RabbitUser   = "RABBIT_USER"
	RabbitPass   = "RABBIT_PASS"

	QueueBrokerBackend   = "QUEUE_BROKER_BACKEND"
	QueueResultsBackend  = "QUEUE_RESULTS_BACKEND"
	QueueRedisDatabaseID = "QUEUE_REDIS_DATABASE_ID"
)

// Task queue backends accepted by TaskQueueMixin.
const (
	BackendRabbitMQ = "rabbitmq"
	BackendRedis    = "redis"
)

var (
	// ServiceMixin controls the HTTP listener of a service.
	ServiceMixin = Mixin{
		Name: "ServiceMixin",
		Fields: []props.Field{
			props.Named(Serve, props.Bool(props.Default(true))),
			props.Named(ServeHost, props.String(props.Default("localhost"))),
			props.Named(ServePort, props.Int(props.Min(1), props.Max(65535), props.Default(int64(5000)))),
		},
	}

	// PostgresMixin describes the database connection.
	// TEST_DB_URL replaces the whole DSN when the app runs in testing mode.
	PostgresMixin = Mixin{
		Name: "PostgresMixin",
		Fields: []props.Field{
			props.Named(TestDBURL, props.String(props.Default("postgres://localhost:5432/test?sslmode=disable"))),
			props.Named(DBDriver, props.String(props.Default("postgres"))),
			props.Named(DBHost, props.String(props.Default("localhost"))),
			props.Named(DBPort, props.Int(props.Min(1), props.Max(65535), props.Default(int64(5432)))),
			props.Named(DBUser, props.String(props.Nullable())),
			props.Named(DBPass, props.Password(props.Nullable())),
		},
	}

	// RedisMixin describes the cache connection.
	RedisMixin = Mixin{
		Name: "RedisMixin",
		Fields: []props.Field{
			props.Named(RedisDriver, props.String(props.Default("redis"))),
			props.Named(RedisHost, props.String(props.Default("localhost"))),
			props.Named(RedisPort, props.Int(props.Min(1), props.Max(65535), props.Default(int64(6379)))),
			props.Named(RedisPass, props.Password(props.Nullable())),
		},
	}

	// RabbitMixin describes the message broker connection.
	RabbitMixin = Mixin{
		Name: "RabbitMixin",
		Fields: []props.Field{
			props.Named(RabbitDriver, props.String(props.Default("amqp"))),
			props.Named(RabbitHost, props.String(props.Default("localhost"))),
			props.Named(RabbitPort, props.Int(props.Min(1), props.Max(65535), props.Default(int64(5672)))),
			props.Named(RabbitUser, props.String(props.Default("guest"))),
			props.Named(RabbitPass, props.Password(props.Default("guest"))),
		},
	}

	// TaskQueueMixin selects the task queue broker and result backends.
	TaskQueueMixin = Mixin{
		Name: "TaskQueueMixin",
		Fields: []props.Field{
			props.Named(QueueBrokerBackend, props.String(props.Choices(BackendRabbitMQ, BackendRedis), props.Default(BackendRabbitMQ))),
			props.Named(QueueResultsBackend, props.String(props.Choices(BackendRabbitMQ, BackendRedis), props.Default(BackendRabbitMQ))),
			props.Named(QueueRedisDatabaseID, props.Int(props.Min(0), props.Default(int64(0)))),
		},
	}
)
