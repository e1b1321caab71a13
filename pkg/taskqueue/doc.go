// Package taskqueue resolves the broker and results endpoints of a task
// queue from a config that includes config.TaskQueueMixin.
//
// QUEUE_BROKER_BACKEND and QUEUE_RESULTS_BACKEND each select "rabbitmq" or
// "redis". A rabbitmq backend requires config.RabbitMixin; a redis backend
// requires config.RedisMixin and uses QUEUE_REDIS_DATABASE_ID as the
// database index.
package taskqueue
