package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ardnew/shtp/pkg"
	"github.com/ardnew/shtp/shtp"
)

const namespace = "shtp"

// Exporter wires one [shtp.Endpoint]'s Counters into a Prometheus
// registry and serves them over /metrics.
type Exporter struct {
	registry *prometheus.Registry
	server   *http.Server
}

// NewExporter registers a GaugeFunc collector for each of endpoint's seven
// diagnostic counters against a fresh registry.
func NewExporter(endpoint *shtp.Endpoint) *Exporter {
	reg := prometheus.NewRegistry()

	type counter struct {
		name string
		help string
		get  func(shtp.Counters) uint64
	}
	counters := []counter{
		{"rx_bad_channel", "Inbound frames naming an out-of-range channel.", func(c shtp.Counters) uint64 { return c.RxBadChannel }},
		{"rx_short_fragments", "Inbound frames shorter than the header, or declaring a length shorter than the header.", func(c shtp.Counters) uint64 { return c.RxShortFragments }},
		{"rx_too_large_payloads", "Inbound cargoes whose declared size exceeded MaxPayloadIn.", func(c shtp.Counters) uint64 { return c.RxTooLargePayloads }},
		{"rx_interrupted_payloads", "In-progress inbound assemblies abandoned by an incompatible fragment.", func(c shtp.Counters) uint64 { return c.RxInterruptedPayloads }},
		{"tx_bad_channel", "Outbound sends naming an out-of-range channel.", func(c shtp.Counters) uint64 { return c.TxBadChannel }},
		{"tx_discards", "Outbound cargoes aborted mid-flight by a HAL write error.", func(c shtp.Counters) uint64 { return c.TxDiscards }},
		{"tx_too_large_payloads", "Outbound sends whose payload exceeded MaxPayloadOut.", func(c shtp.Counters) uint64 { return c.TxTooLargePayloads }},
	}

	for _, c := range counters {
		get := c.get
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      c.name,
				Help:      c.help,
			},
			func() float64 { return float64(get(endpoint.Counters())) },
		))
	}

	return &Exporter{registry: reg}
}

// ListenAndServe starts an HTTP server on addr exposing /metrics, blocking
// until ctx is canceled or the server fails to start.
func (e *Exporter) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))

	e.server = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- e.server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		pkg.LogInfo(pkg.ComponentGateway, "metrics server shutting down", "addr", addr)
		return e.server.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
