package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {

	// Tag every request with an id, reusing the caller's when present
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get(requestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
				req.Header.Set(requestIdHeader, requestId)
			}
			w.Header().Set(requestIdHeader, requestId)
			next.ServeHTTP(w, req)
		})
	})

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, req)
			log.WithFields(log.Fields{
				"requestId": req.Header.Get(requestIdHeader),
				"method":    req.Method,
				"path":      req.URL.Path,
				"status":    recorder.status,
				"duration":  time.Since(start).String(),
			}).Debug("Handled request")
		})
	})
}
