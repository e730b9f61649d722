package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/mcp"
	"github.com/mergington/activities/internal/memstore"
	"github.com/mergington/activities/internal/metrics"
	"github.com/mergington/activities/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 5 * time.Second

type options struct {
	configPath string
	transport  string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "activities",
		Short:        "Mergington High School activity registry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file (default $ACTIVITIES_CONFIG_PATH)")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "transport mode: http or stdio")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath,
		config.WithTransport(opts.transport),
		config.WithLogLevel(opts.logLevel),
	)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := stdout
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	seed, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := memstore.New(seed)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	logger.Info("registry ready", "activities", len(seed), "catalog", catalogSource(cfg.Catalog.Path))

	var recorder activity.Recorder
	m := newMetrics(cfg, seed)
	if m != nil {
		recorder = m
	}

	activitySvc := activity.NewService(store, recorder, logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Activities: activitySvc,
		Version:    version,
		Logger:     logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(ctx, logger, mcpServer)
	}
	return runHTTPMode(ctx, logger, cfg, activitySvc, mcpServer, m)
}

// newMetrics returns nil unless metrics are enabled and there is an HTTP
// endpoint to serve them from.
func newMetrics(cfg config.Config, seed []activity.Activity) *metrics.Metrics {
	if cfg.Transport.Mode != config.TransportHTTP || !cfg.Metrics.Enabled {
		return nil
	}
	m := metrics.New()
	for _, a := range seed {
		m.SetRosterSize(a.Name, len(a.Participants))
	}
	return m
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, cfg config.Config, svc *activity.Service, mcpServer *sdkmcp.Server, m *metrics.Metrics) error {
	opts := transport.Options{
		StaticDir: cfg.Server.StaticDir,
		Logger:    logger,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			nil,
		),
	}
	if m != nil {
		opts.Metrics = m.Handler()
		opts.Observer = m
	}
	if _, err := os.Stat(cfg.Server.StaticDir); err != nil {
		logger.Warn("static directory unavailable", "dir", cfg.Server.StaticDir, "error", err)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdown(logger, httpServer)
}

func shutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
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
