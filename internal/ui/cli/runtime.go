package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreapp "typeonly/internal/core/app"
	"typeonly/internal/core/config"
	"typeonly/internal/data/history"
	"typeonly/internal/shared/observability"
	"typeonly/internal/shared/util"
	"typeonly/internal/shared/version"
	"typeonly/internal/ui/report/formats"
)

const (
	exitOK         = 0
	exitViolations = 1
	exitUsage      = 2
)

func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "typeonly v%s\n", version.Version)
		return exitOK
	}

	configureLogging(stderr, opts.verbose)

	cfg, err := config.LoadOrDefault(opts.configPath, !opts.set["config"])
	if err != nil {
		slog.Error("failed to load config", "path", opts.configPath, "error", err)
		return exitUsage
	}
	if err := applyOverrides(opts, cfg); err != nil {
		slog.Error("invalid options", "error", err)
		return exitUsage
	}

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to detect working directory", "error", err)
		return exitUsage
	}

	shutdownTracing := startTracing(ctx, cfg.Observability.OTLPEndpoint)
	defer shutdownTracing()
	stopMetrics := startMetricsServer(ctx, cfg.Observability.MetricsAddress)
	defer stopMetrics()

	checker, err := coreapp.New(cfg)
	if err != nil {
		slog.Error("failed to initialize checker", "error", err)
		return exitUsage
	}
	slog.Debug("checker initialized",
		"extensions", checker.SupportedExtensions(),
		"workers", cfg.Scan.Workers(),
		"ban_enums", cfg.Rule.BanEnums)

	renderOpts := formats.Options{
		Format:      cfg.Output.Format,
		ProjectRoot: cwd,
		BanEnums:    cfg.Rule.BanEnums,
		Color:       cfg.Output.ColorEnabled() && cfg.Output.Path == "",
	}

	var recorder *runRecorder
	if cfg.History.Enabled {
		recorder = openRecorder(cfg.History.Path, cwd)
		defer recorder.Close()
	}

	if opts.watch {
		err := checker.Watch(ctx, cfg.Scan.Paths, func(result coreapp.RunResult) {
			if err := emitReport(stdout, cfg.Output.Path, withTrend(renderOpts, recorder.Record(result)), result); err != nil {
				slog.Error("failed to write report", "error", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("watch failed", "error", err)
			return exitUsage
		}
		return exitOK
	}

	result, err := checker.Run(ctx, cfg.Scan.Paths)
	if err != nil {
		slog.Error("check failed", "error", err)
		return exitUsage
	}
	if err := emitReport(stdout, cfg.Output.Path, withTrend(renderOpts, recorder.Record(result)), result); err != nil {
		slog.Error("failed to write report", "path", cfg.Output.Path, "error", err)
		return exitUsage
	}
	if result.Failed() {
		return exitViolations
	}
	return exitOK
}

func withTrend(opts formats.Options, delta *history.Delta) formats.Options {
	opts.Trend = delta
	return opts
}

func emitReport(stdout io.Writer, path string, opts formats.Options, result coreapp.RunResult) error {
	data, err := formats.Render(opts, result)
	if err != nil {
		return err
	}
	if path != "" {
		return util.WriteFileWithDirs(path, data, 0o644)
	}
	_, err = stdout.Write(data)
	return err
}

// configureLogging routes logs to stderr so stdout carries only reports.
func configureLogging(output io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

func startTracing(ctx context.Context, endpoint string) func() {
	if endpoint == "" {
		return func() {}
	}
	shutdown, err := observability.InitTracing(ctx, endpoint)
	if err != nil {
		slog.Warn("tracing disabled", "endpoint", endpoint, "error", err)
		return func() {}
	}
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}
}

func startMetricsServer(ctx context.Context, addr string) func() {
	if addr == "" {
		return func() {}
	}
	server := NewObservabilityServer(addr)
	if err := server.Start(ctx); err != nil {
		slog.Warn("metrics server disabled", "addr", addr, "error", err)
		return func() {}
	}
	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Stop(stopCtx)
	}
}
