package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/knijam/jason/pkg/props"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Schema records a schema or config name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Mixin records a config mixin name under the key "mixin".
func Mixin(name string) slog.Attr {
	return slog.String("mixin", name)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records d under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ValidationErrors records every failure of a load pass under the key
// "validation_errors", one group per path in first-seen order. Root failures
// use the key "_". A path with several failures holds one subgroup per
// failure keyed "0", "1" and so on. Errors that carry no *props.BatchError
// yield an empty Attr.
func ValidationErrors(err error) slog.Attr {
	batch := props.ExtractBatchError(err)
	if batch == nil {
		return slog.Attr{}
	}

	var keys []string
	byPath := make(map[string][]*props.PropertyError)
	for path, perr := range batch.All() {
		key := path.String()
		if key == "" {
			key = "_"
		}
		if _, seen := byPath[key]; !seen {
			keys = append(keys, key)
		}
		byPath[key] = append(byPath[key], perr)
	}

	as := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		perrs := byPath[key]
		if len(perrs) == 1 {
			as = append(as, Group(key, failureAttrs(perrs[0])...))
			continue
		}
		sub := make([]slog.Attr, len(perrs))
		for i, perr := range perrs {
			sub[i] = Group(strconv.Itoa(i), failureAttrs(perr)...)
		}
		as = append(as, Group(key, sub...))
	}
	return Group("validation_errors", as...)
}

func failureAttrs(perr *props.PropertyError) []slog.Attr {
	return []slog.Attr{
		slog.String("kind", string(perr.Kind)),
		slog.String("message", perr.Message),
	}
}
