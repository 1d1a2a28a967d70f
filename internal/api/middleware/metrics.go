package middleware

import (
	"net/http"
	"sync/atomic"
)

// UpstreamPhaseHeader is set by handlers on responses relayed from a
// provider failure.
const UpstreamPhaseHeader = "X-Upstream-Phase"

// MetricsCollector counts requests, error responses and relayed provider
// failures.
type MetricsCollector struct {
	requestCount  *atomic.Int64
	errorCount    *atomic.Int64
	upstreamCount *atomic.Int64
}

func NewMetricsCollector(requestCount, errorCount, upstreamCount *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{
		requestCount:  requestCount,
		errorCount:    errorCount,
		upstreamCount: upstreamCount,
	}
}

func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requestCount.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			mc.errorCount.Add(1)
		}
		if rw.Header().Get(UpstreamPhaseHeader) != "" {
			mc.upstreamCount.Add(1)
		}
	})
}
