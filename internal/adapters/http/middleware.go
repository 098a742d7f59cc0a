package httpadapter

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osalazar/pobot/internal/observability"
)

// withRequestID tags every request with a correlation id and logs it, so
// webhook deliveries can be matched to dialogue log lines.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := observability.WithRequestID(r.Context(), reqID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		observability.LoggerFromContext(ctx).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}
