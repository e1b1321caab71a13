package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/knijam/jason/pkg/props"
)

// DefaultMaxMemory is the multipart memory limit before spilling to disk.
const DefaultMaxMemory = 10 << 20

// DecodeForm parses url-encoded or multipart form values.
// File parts are ignored.
func DecodeForm(r *http.Request, limit int64) (url.Values, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if limit <= 0 {
			limit = DefaultMaxBodySize
		}
		r.Body = http.MaxBytesReader(nil, r.Body, limit)
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, limit)
			}
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return r.PostForm, nil

	case "multipart/form-data":
		if params["boundary"] == "" {
			return nil, fmt.Errorf("%w: missing boundary in content type", ErrFailedToParseForm)
		}
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		if r.MultipartForm == nil {
			return url.Values{}, nil
		}
		return url.Values(r.MultipartForm.Value), nil

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}
}

// textValues converts text values for the fields schema declares.
// Repeated keys bound to an Array become one element each; everything else
// takes the first value.
func textValues(schema *props.Schema, values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for _, f := range schema.Fields() {
		vs, ok := values[f.Name]
		if !ok || len(vs) == 0 {
			continue
		}
		if arr, ok := f.Prop.(*props.ArrayProperty); ok && len(vs) > 1 {
			items := make([]any, 0, len(vs))
			for _, v := range vs {
				items = append(items, props.ParseText(arr.Item(), v))
			}
			out[f.Name] = items
			continue
		}
		out[f.Name] = props.ParseText(f.Prop, vs[0])
	}
	return out
}
