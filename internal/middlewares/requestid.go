package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it back and stores it
// in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the id stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDHook adds the request id to every logrus entry logged with a request context.
type RequestIDHook struct{}

func (RequestIDHook) Levels() []log.Level {
	return log.AllLevels
}

func (RequestIDHook) Fire(entry *log.Entry) error {
	if entry.Context == nil {
		return nil
	}
	if id := RequestIDFromContext(entry.Context); id != "" {
		entry.Data["requestId"] = id
	}
	return nil
}
