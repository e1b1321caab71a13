// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives SIGINT
// or SIGTERM, then calls http.Server.Shutdown bounded by the shutdown
// timeout. NewFromConfig takes the listen address from a loaded config that
// includes config.ServiceMixin:
//
//	srv, err := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, router)
//
// HealthCheckHandler serves liveness and readiness probes. Listen failures
// wrap ErrStart and shutdown failures wrap ErrShutdown.
package httpserver
