// Package requestid scopes every request: it assigns an identifier for log
// correlation and pins one "now" so turn timestamps within a request agree.
package requestid

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"ayala/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxInboundLength bounds caller-supplied IDs before they reach logs.
const maxInboundLength = 128

// Middleware reuses a caller-supplied X-Request-ID or mints a UUID, stores it
// and the request start time in the context, and echoes the id on the response.
func Middleware(next http.Handler) http.Handler {
	return middleware(time.Now)(next)
}

func middleware(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(Header)
			if reqID == "" || len(reqID) > maxInboundLength {
				reqID = uuid.NewString()
			}
			w.Header().Set(Header, reqID)
			ctx := requestcontext.WithRequestID(r.Context(), reqID)
			ctx = requestcontext.WithTime(ctx, now().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
