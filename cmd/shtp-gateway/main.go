//go:build linux

// Command shtp-gateway wires a HAL, an SHTP endpoint, configured channel
// loggers, and a Prometheus metrics exporter into a runnable host-side
// program. It requires Linux because the serial HAL option depends on
// termios ioctls; a loopback-only build could drop the tag, but the
// binary supports both HALs from one config file.
//
// Usage:
//
//	shtp-gateway -config /path/to/shtp.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardnew/shtp/config"
	"github.com/ardnew/shtp/hal"
	"github.com/ardnew/shtp/hal/loopback"
	"github.com/ardnew/shtp/hal/serial"
	"github.com/ardnew/shtp/metrics"
	"github.com/ardnew/shtp/pkg"
	_ "github.com/ardnew/shtp/pkg/prof" // registers /debug/pprof/ when built with -tags profile
	"github.com/ardnew/shtp/shtp"
)

func main() {
	configPath := flag.String("config", "shtp.yaml", "path to the gateway's YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shtp-gateway: %v\n", err)
		os.Exit(1)
	}

	pkg.SetLogFormat(cfg.LogFormat())
	pkg.SetLogLevel(parseLevel(cfg.Log.Level))

	transport, err := buildTransport(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shtp-gateway: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := shtp.Open(transport)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shtp-gateway: open endpoint: %v\n", err)
		os.Exit(1)
	}
	defer endpoint.Close()

	for _, ch := range cfg.Channel {
		label := ch.Label
		if err := endpoint.Listen(ch.ID, loggingListener(label), nil); err != nil {
			pkg.LogWarn(pkg.ComponentGateway, "failed to register channel listener",
				"channel", ch.ID, "label", label, "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		pkg.LogInfo(pkg.ComponentGateway, "shutdown signal received")
		cancel()
	}()

	exporter := metrics.NewExporter(endpoint)
	go func() {
		if err := exporter.ListenAndServe(ctx, cfg.Metrics.Listen); err != nil {
			pkg.LogError(pkg.ComponentGateway, "metrics server error", "error", err)
		}
	}()

	pkg.LogInfo(pkg.ComponentGateway, "gateway started", "hal", cfg.HAL, "metrics", cfg.Metrics.Listen)

	for {
		select {
		case <-ctx.Done():
			pkg.LogInfo(pkg.ComponentGateway, "gateway stopped")
			return
		default:
			endpoint.Service()
			time.Sleep(time.Millisecond)
		}
	}
}

func buildTransport(cfg *config.Config) (hal.Transport, error) {
	switch cfg.HAL {
	case config.HALSerial:
		return serial.New(serial.Config{
			Path:         cfg.Serial.Path,
			Baud:         cfg.Serial.Baud,
			TransferUnit: cfg.Serial.TransferUnit,
			MaxPayload:   cfg.Serial.MaxPayload,
		}), nil
	case config.HALLoopback:
		a, b := loopback.NewPair(nil)
		if err := b.Open(); err != nil {
			return nil, fmt.Errorf("open loopback peer: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unsupported hal %q", cfg.HAL)
	}
}

func loggingListener(label string) shtp.Listener {
	return func(_ any, buf []byte, timestamp uint64) {
		pkg.LogDebug(pkg.ComponentGateway, "cargo received",
			"label", label, "bytes", len(buf), "timestamp", timestamp)
	}
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
