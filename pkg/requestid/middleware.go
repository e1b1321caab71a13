package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/knijam/jason/pkg/props"
)

const Header = "X-Request-ID"

// idProp accepts client IDs of up to 128 word characters and dashes.
var idProp = props.Regex(`[a-zA-Z0-9_-]{1,128}`)

// Valid reports whether a client-supplied ID is reused as is.
func Valid(id string) bool {
	_, err := idProp.Load(id)
	return err == nil
}

// Middleware stores a request ID in the request context and echoes it in
// the response header. Missing or invalid client IDs are replaced by a
// new UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !Valid(requestID) {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}
