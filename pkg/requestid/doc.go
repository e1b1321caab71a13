// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware reuses a valid X-Request-ID header or generates a UUID, stores
// it in the request context and echoes it back. LoggerExtractor plugs into
// logger.WithContextExtractors so records logged with the request context
// carry the ID.
package requestid
