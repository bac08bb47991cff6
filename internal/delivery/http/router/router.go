package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/newsingest/internal/delivery/http/handler"
	"github.com/user/newsingest/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("POST /api/ingest", h.HandleIngest)
	mux.HandleFunc("GET /api/news", h.HandleGetNews)
	mux.HandleFunc("GET /api/report", h.HandleReport)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
