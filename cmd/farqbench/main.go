// Command farqbench runs one of the protocol's scenario benchmarks against
// a simulated loss+latency tunnel and optionally serves the resulting
// congestion/window metrics over HTTP for scraping.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farqproto/farq/metrics"
	"github.com/farqproto/farq/sim"
)

func run() error {
	scenario := flag.String("scenario", "s1", "scenario to run: s1 (lossless bulk), s2 (10% loss), s6 (dead link)")
	size := flag.Int("size", 1_000_000, "message size in bytes for s1/s2")
	lossPct := flag.Float64("loss", 10, "per-direction loss percentage for s2")
	rttMs := flag.Uint("rtt", 60, "round-trip time in milliseconds")
	metricsAddr := flag.String("metrics", "", "if set, serve Prometheus metrics on this address (e.g. :9090) while the scenario runs")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `farqbench - run a farq scenario against a simulated network

USAGE:
  farqbench [flags]

FLAGS:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	tunnel := sim.NewTunnel(uint32(*rttMs)/2, 0, 0, 1)
	if *scenario == "s2" {
		tunnel = sim.NewTunnel(uint32(*rttMs)/2, *lossPct/100, *lossPct/100, 1)
	}
	if *scenario == "s6" {
		tunnel = sim.NewTunnel(uint32(*rttMs)/2, 0, 1, 1) // every ack B->A is lost
	}
	h := sim.NewHarness(0x11223344, tunnel)
	h.A.SetLogger(logger)
	h.B.SetLogger(logger)

	if *scenario == "s6" {
		h.A.SetDeadLink(20)
	} else {
		h.A.SetNoDelay(1, 10, 2, 1)
		h.B.SetNoDelay(1, 10, 2, 1)
	}

	if *metricsAddr != "" {
		collector := metrics.NewCollector("farqbench", []string{"endpoint"})
		collector.Track(h.A, "A")
		collector.Track(h.B, "B")
		registry := prometheus.NewRegistry()
		registry.MustRegister(collector)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			logger.Info("serving metrics", "addr", *metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server exited", "error", err)
			}
		}()
	}

	payload := bytes.Repeat([]byte{'a'}, *size)
	if *scenario != "s6" {
		if err := h.A.Send(payload); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	} else {
		if err := h.A.Send([]byte("probe")); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	}

	start := time.Now()
	const stepMs = 10
	const maxSteps = 2_000_000 / stepMs

	switch *scenario {
	case "s6":
		done := h.Run(stepMs, maxSteps, func(h *sim.Harness) bool { return h.A.State() })
		if !done {
			return fmt.Errorf("link never marked dead")
		}
		fmt.Printf("dead-link latched after %s, xmit=%d\n", time.Since(start), h.A.Stats().XmitTotal)
	default:
		received := 0
		buf := make([]byte, len(payload))
		done := h.Run(stepMs, maxSteps, func(h *sim.Harness) bool {
			if received >= len(payload) {
				return true
			}
			n, err := h.B.Recv(buf[received:])
			if err == nil {
				received += n
			}
			return received >= len(payload)
		})
		if !done {
			return fmt.Errorf("timed out after %s, received %d/%d bytes", time.Since(start), received, len(payload))
		}
		fmt.Printf("delivered %d bytes in %s, xmit=%d, srtt=%dms\n",
			len(payload), time.Since(start), h.A.Stats().XmitTotal, h.A.Stats().SRTTMillis)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "farqbench:", err)
		os.Exit(1)
	}
}
