// Package pg connects a service to PostgreSQL with pgx/v5 and applies goose
// migrations.
//
// DSN renders the connection URL from a config that includes
// config.PostgresMixin. Pool tuning, retries and the migrations directory
// come from Config, which is parsed from PG_* environment variables:
//
//	dsn, err := pg.DSN(cfg, app.Testing())
//	if err != nil {
//		return err
//	}
//	var tuning pg.Config
//	if err := config.Load(&tuning); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, dsn, tuning)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, tuning, log); err != nil {
//		return err
//	}
//
// Healthcheck adapts the pool to a readiness probe.
package pg
