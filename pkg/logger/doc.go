// Package logger builds *slog.Logger values from functional options and adds
// attributes pulled from context.Context to every record.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler by Format and wraps it
// in a ContextHandler that runs the registered ContextExtractor callbacks
// before delegating. Services use WithDebug or WithRelease depending on how
// they were started:
//
//	log := logger.New(
//	    logger.WithDebug("billing"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.WarnContext(ctx, "rejected payload",
//	    logger.Schema("signup"),
//	    logger.ValidationErrors(err),
//	)
//
// Attribute helpers keep key names consistent. Error, Errors and
// ValidationErrors return an empty Attr for nil input, so they can be passed
// without a nil check.
package logger
