package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nurhusenm/Devtracker/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLog tags every request with an id and logs method, path, status and
// duration once the handler returns.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logging.Logger.Infof("Request ID: %s, %s %s -> %d (%s)",
			requestID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
