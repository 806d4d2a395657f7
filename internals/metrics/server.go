package metrics

import (
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"wsb.com/wchain/internals/ledger"
)

// Handler serves the ledger metrics from a dedicated registry.
func Handler(l *ledger.Ledger) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewChainCollector(l))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// CreateMetricsServer binds addr and serves /metrics in the background. The
// returned server's Addr holds the bound address.
func CreateMetricsServer(l *ledger.Ledger, addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(l))
	server := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: mux,
	}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Failed to serve metrics")
		}
	}()

	logrus.WithField("addr", server.Addr).Info("Metrics server listening")
	return server, nil
}
