package binder

import (
	"fmt"
	"maps"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/knijam/jason/pkg/props"
)

// Option configures Bind.
type Option func(*options)

type options struct {
	maxBodySize int64
	pathParams  func(r *http.Request) map[string]string
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) { o.maxBodySize = n }
}

// WithPathParams replaces the chi route parameter lookup.
func WithPathParams(fn func(r *http.Request) map[string]string) Option {
	return func(o *options) {
		if fn != nil {
			o.pathParams = fn
		}
	}
}

// ChiPathParams returns the URL parameters chi matched for r.
func ChiPathParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	out := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			out[key] = rctx.URLParams.Values[i]
		}
	}
	return out
}

// Bind collects the request's query string, body and path parameters and
// loads them through schema. Body values win over query values and path
// parameters win over both. Text values from the query, forms and the path
// are converted with each field's text parser before loading.
func Bind(r *http.Request, schema *props.RequestSchema, opts ...Option) (*props.Document, error) {
	o := options{
		maxBodySize: DefaultMaxBodySize,
		pathParams:  ChiPathParams,
	}
	for _, opt := range opts {
		opt(&o)
	}

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	raw := textValues(schema.Schema, query)

	body, err := decodeBody(r, schema.Schema, o.maxBodySize)
	if err != nil {
		return nil, err
	}
	maps.Copy(raw, body)

	path := url.Values{}
	for k, v := range o.pathParams(r) {
		path.Set(k, v)
	}

	return schema.Load(raw, textValues(schema.Schema, path))
}

func decodeBody(r *http.Request, schema *props.Schema, limit int64) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if r.Body == nil || r.Body == http.NoBody || (r.ContentLength == 0 && contentType == "") {
		return nil, nil
	}
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		return DecodeJSON(r, limit)
	case "application/x-www-form-urlencoded", "multipart/form-data":
		values, err := DecodeForm(r, limit)
		if err != nil {
			return nil, err
		}
		return textValues(schema, values), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}
