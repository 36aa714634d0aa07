package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve starts a metrics HTTP server on the given port. It blocks until the
// server exits.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	slog.Info("metrics server listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
