package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) observability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// route patterns keep label cardinality bounded
		path := pathPattern(r)
		elapsed := time.Since(start)
		status := strconv.Itoa(ww.Status())

		s.metrics.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		s.metrics.HTTPDuration.WithLabelValues(r.Method, path, status).Observe(elapsed.Seconds())

		s.logger.Info("http request",
			"req_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", path,
			"status", ww.Status(),
			"duration", elapsed)
	})
}

func pathPattern(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
