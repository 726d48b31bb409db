package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"microblog/internal/telemetry"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests tags every request with an id, times it and records the
// duration by route template.
func (api *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
				telemetry.TagRoute(r, tmpl)
			}
		}
		api.metrics.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())

		api.afterRequestLogging(start, r, requestID, rec.status)
	})
}

func (api *API) afterRequestLogging(start time.Time, r *http.Request, requestID string, status int) {
	duration := time.Since(start)
	entry := api.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"duration":   duration,
		"remote_ip":  r.RemoteAddr,
		"request_id": requestID,
	})

	if duration > api.opts.SlowRequestThreshold {
		entry.Warn("Slow request detected")
	} else {
		entry.Info("Request completed quickly")
	}
}
