package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/particlewire/internal/api"
	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/broadcast"
	"github.com/vango-dev/particlewire/pkg/particle"
	"github.com/vango-dev/particlewire/pkg/telemetry"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the encoder over HTTP",
		Long: `Start the HTTP server.

Routes:
  GET    /healthz            liveness and protocol version
  GET    /metrics            Prometheus metrics (if enabled)
  GET    /v1/effects         effects available at the version
  GET    /v1/mappings        resolved mapping names
  POST   /v1/encode          encode one request
  GET    /v1/tasks           running display tasks
  POST   /v1/tasks           start a repeating display task
  DELETE /v1/tasks/{id}      stop a task
  GET    /v1/endpoints       connected viewers
  GET    /ws?id=..&world=..  viewer WebSocket

Examples:
  particlewire serve
  particlewire serve --port 8080 --host 0.0.0.0 --version 1.16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from particlewire.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from particlewire.json)")

	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, host string, port int) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	cfg := e.cfg
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		metrics  *telemetry.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		metrics = telemetry.Init(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(prometheus.DefaultRegisterer),
		)
		gatherer = prometheus.DefaultGatherer
	}

	enc := telemetry.NewEncoder(particle.NewEncoder(e.catalog),
		telemetry.WithMetrics(metrics),
		telemetry.WithTracerName(cfg.Tracing.TracerName),
		telemetry.WithLogger(e.logger),
	)

	opts := []broadcast.Option{
		broadcast.WithWriteTimeout(cfg.WriteTimeout()),
		broadcast.WithMetrics(metrics),
		broadcast.WithLogger(e.logger),
	}
	if tick := cfg.Tick(); tick > 0 {
		opts = append(opts, broadcast.WithTick(tick))
	}
	hub := broadcast.NewHub(opts...)
	manager := broadcast.NewManager(hub, opts...)

	srv := api.New(api.Options{
		Encoder:     enc,
		Table:       e.table,
		Hub:         hub,
		Manager:     manager,
		Metrics:     metrics,
		Gatherer:    gatherer,
		MetricsPath: cfg.Metrics.Path,
		TracerName:  cfg.Tracing.TracerName,
		Logger:      e.logger,
	})

	ln, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return errors.New(errors.CodeServerStart).Wrap(err)
	}
	httpServer := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	w := cmd.OutOrStdout()
	success(w, "Serving protocol %s (%s) on http://%s", e.catalog.Version(), e.catalog.Tier(), ln.Addr())
	info(w, "%d effects available", len(e.catalog.Available()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New(errors.CodeServerStart).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(w, "\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.logger.Warn("task shutdown incomplete", "error", err)
	}
	return httpServer.Shutdown(shutdownCtx)
}
