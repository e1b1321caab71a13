package binder

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/knijam/jason/pkg/logger"
	"github.com/knijam/jason/pkg/props"
)

// ErrorResponse is the JSON body written for rejected requests.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// StatusCode maps a Bind error to an HTTP status.
func StatusCode(err error) int {
	var reqErr *props.RequestValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &reqErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrFailedToParseJSON),
		errors.Is(err, ErrFailedToParseForm),
		errors.Is(err, ErrFailedToParseQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorResponse. Validation failures list their
// messages per field; root failures are keyed by "_".
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
	}
	if status == http.StatusInternalServerError {
		resp.Message = "internal error"
	}

	var reqErr *props.RequestValidationError
	if errors.As(err, &reqErr) {
		resp.Error = "validation_failed"
		resp.Message = "invalid " + reqErr.Schema + " request"
		resp.Details = reqErr.Batch.Fields()
		if root, ok := resp.Details[""]; ok {
			delete(resp.Details, "")
			resp.Details["_"] = root
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandlerFunc receives a request whose payload already passed validation.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, doc *props.Document)

// Handler binds every request through schema before calling fn.
// Rejected requests are answered with WriteError and logged at warn level.
func Handler(schema *props.RequestSchema, log *slog.Logger, fn HandlerFunc, opts ...Option) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("binder"), logger.Schema(schema.Name()))

	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := Bind(r, schema, opts...)
		if err != nil {
			log.WarnContext(r.Context(), "rejected request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.Error(err),
				logger.ValidationErrors(err),
			)
			WriteError(w, err)
			return
		}
		fn(w, r, doc)
	}
}
