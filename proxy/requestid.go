package proxy

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxRequestID is the longest client-supplied request id, which is trusted.
const maxRequestID = 64

// loggable reports whether the id may be written into logs and forwarded upstream
// as is.
func loggable(id string) bool {
	return len(id) > 0 && len(id) <= maxRequestID && !strings.ContainsFunc(id, func(r rune) bool {
		return r < ' ' || r > '~'
	})
}

// requestID tags every exchange with an id. The client's X-Request-Id is trusted if
// it's loggable, otherwise it's replaced by a random UUID. Both the upstream and the
// client get the resulting id, and chi's middleware.GetReqID returns it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if !loggable(id) {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}

		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
