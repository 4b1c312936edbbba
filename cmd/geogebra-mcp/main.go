// Command geogebra-mcp runs the GeoGebra MCP orchestration server.
//
// It communicates over stdio using JSON-RPC 2.0 (MCP protocol) by default,
// pooling headless-browser GeoGebra applet instances and exposing them as
// tools for construction, plotting, export, and animation.
//
// Optional environment variables:
//
//	LOG_LEVEL               - Log level: debug, info, warn, error (default: info)
//	MAX_INSTANCES           - Instance Pool cap (default: 10)
//	INSTANCE_TIMEOUT        - Instance max age in ms (default: 1800000)
//	MAX_IDLE_TIME           - Instance max idle time in ms (default: 600000)
//	EXPORT_DIR              - Directory for on-disk export artifacts
//	FFMPEG_PATH             - Path to the ffmpeg binary used by the Animation Encoder
//	TRANSPORT_MODE          - "stdio" (default) or "http"
//	TRANSPORT_PORT          - HTTP listen port (http mode only)
//	TRANSPORT_HOST          - HTTP listen address (http mode only)
//	TRANSPORT_CORS_ORIGINS  - Comma-separated CORS origins (http mode only)
//	GEOGEBRA_MCP_API_KEY    - Shared bearer token required of HTTP clients (http mode only)
//	GEOGEBRA_MCP_CONFIG     - Path to a TOML config file
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/config"
	"github.com/geogebra-mcp/geogebra-mcp/internal/content"
	"github.com/geogebra-mcp/geogebra-mcp/internal/encoder"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/perf"
	"github.com/geogebra-mcp/geogebra-mcp/internal/pool"
	"github.com/geogebra-mcp/geogebra-mcp/internal/template"
	"github.com/geogebra-mcp/geogebra-mcp/internal/tools"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "info" {
		runInfo(os.Args[2:])
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "geogebra-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("GEOGEBRA_MCP_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	logger.Info("starting geogebra-mcp",
		"version", version,
		"transport_mode", cfg.Transport.Mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	perfMonitor := perf.New(logger, reg)

	instancePool := pool.New(pool.Config{
		MaxInstances: cfg.Pool.MaxInstances,
		InstanceTTL:  cfg.Pool.InstanceTTL.Duration(),
		MaxIdleTime:  cfg.Pool.MaxIdleTime.Duration(),
		ReadyTimeout: cfg.Pool.ReadyTimeout.Duration(),
		CanvasWidth:  cfg.Pool.CanvasWidth,
		CanvasHeight: cfg.Pool.CanvasHeight,
		AppName:      browser.AppName(cfg.Pool.AppName),
		Headless:     true,
	}, cfg.Pool.SweepInterval.Duration(), logger)
	instancePool.Start(ctx)

	if cfg.Pool.WarmUpCount > 0 {
		if err := instancePool.WarmUp(ctx, cfg.Pool.WarmUpCount); err != nil {
			logger.Warn("pool warm-up failed", "error", err)
		}
	}

	deps := tools.Deps{
		Pool:    instancePool,
		Perf:    perfMonitor,
		Encoder: encoder.New(cfg.Encoder.FFmpegPath),
		Log:     logger,
	}

	registry := mcp.NewRegistry()
	tools.RegisterMeta(registry, cfg.Server.Name, version)
	tools.RegisterConstruction(registry, deps)
	tools.RegisterCreation(registry, deps)
	tools.RegisterPlotting(registry, deps)
	tools.RegisterStyling(registry, deps)
	tools.RegisterView(registry, deps)
	tools.RegisterExport(registry, deps)
	tools.RegisterAnimation(registry, deps)
	tools.RegisterPerformance(registry, deps)

	templateRuntime := template.New(registry)
	tools.RegisterTemplates(registry, templateRuntime)

	registry.RegisterPrompt(&content.BuildConstructionPrompt{})
	registry.RegisterPrompt(&content.DiagnosePerformancePrompt{})
	registry.RegisterResource(&content.DSLReferenceResource{})
	registry.RegisterResource(&content.ToolReferenceResource{})

	server := mcp.NewServer(registry, mcp.ServerInfo{
		Name:    cfg.Server.Name,
		Version: version,
	}, logger)

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		instancePool.Shutdown(shutdownCtx)
	}()

	switch cfg.Transport.Mode {
	case "http":
		return runHTTP(ctx, cfg, server, reg, logger)
	default:
		return server.Run(ctx)
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, reg *prometheus.Registry, logger *slog.Logger) error {
	httpServer := mcp.NewHTTPServer(server, cfg.Transport.CORSOrigins, cfg.Transport.APIKey, logger)

	mux := http.NewServeMux()
	mux.Handle("/", httpServer.Handler())
	if cfg.Transport.MetricsEnabled {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	addr := cfg.Transport.Host + ":" + cfg.Transport.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http transport listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
