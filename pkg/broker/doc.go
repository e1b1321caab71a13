// Package broker consumes RabbitMQ queues with amqp091-go.
//
// URL renders the AMQP URL from a config that includes config.RabbitMixin.
// A Consumer declares its queue, hands every delivery to a Handler and acks
// or nacks depending on the result:
//
//	url, err := broker.URL(cfg)
//	if err != nil {
//		return err
//	}
//	c := broker.NewConsumer(url, "emails", func(ctx context.Context, d amqp.Delivery) error {
//		return send(ctx, d.Body)
//	}, broker.WithLogger(log))
//	return c.Run(ctx)
package broker
