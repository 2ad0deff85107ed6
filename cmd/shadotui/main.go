// Command shadotui runs the terminal UI template.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/odvcencio/shadotui/pkg/bus"
	"github.com/odvcencio/shadotui/pkg/config"
	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/telemetry"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/backend/tcell"
	"github.com/odvcencio/shadotui/pkg/ui/components"
	"github.com/odvcencio/shadotui/pkg/ui/crash"
	"github.com/odvcencio/shadotui/pkg/ui/runtime"
)

// Overridden in tests.
var (
	isInteractive = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	newSurface = func() (backend.Surface, error) { return tcell.New() }
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	err := execute(args, stdout, stderr)
	if err != nil {
		printError(stderr, err)
	}
	return exitCodeForError(err)
}

func execute(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if stderrors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return usageError(err)
	}
	if opts.showVersion {
		printVersion(stdout)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return usageError(err)
	}

	if !isInteractive() {
		return errors.New(errors.ErrCodeTerminalEnter, "shadotui needs an interactive terminal").
			WithRemediation("run it directly in a terminal, not through a pipe")
	}
	crash.Install(tcell.RestoreActive, crash.TerminalRestorer(int(os.Stdin.Fd())))
	defer crash.Recover()

	logger, err := logging.NewLogger(cfg.LogDir(), uuid.NewString())
	if err != nil {
		return err
	}
	defer logger.Close()
	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logger.SetMinLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		metrics *telemetry.Metrics
		stream  *telemetry.NotificationStream
	)
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics()
		stream = telemetry.NewNotificationStream()
		defer stream.Close()
		srv := telemetry.NewServer(cfg.Metrics.Listen, metrics, telemetry.WithNotificationStream(stream))
		go func() {
			defer crash.Recover()
			if err := srv.Run(ctx); err != nil {
				_ = logger.Error(logging.CategoryHost, "metrics_failed", "metrics server stopped", map[string]any{
					"listen": cfg.Metrics.Listen,
					"error":  err.Error(),
				})
			}
		}()
	}

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewFileTracerProvider("shadotui", version, cfg.TraceFile())
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())
	}

	notifications, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer closeBus(notifications, logger)
	if _, err := notifications.Subscribe(ctx, cfg.Notify.Subject, relay(stream, logger)); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	appTick, renderTick := cfg.TickRates()
	outbox := runtime.NewQueue[runtime.Message]()
	app, err := runtime.NewApp(runtime.AppConfig{
		Root: components.NewHome(
			components.WithProcessingDelay(cfg.ProcessingDelay()),
			components.WithLogger(logger),
		),
		TickRates:  runtime.TickRates{App: appTick, Render: renderTick},
		NewSurface: newSurface,
		Outbox:     outbox,
		Signals:    signals,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return err
	}

	h := &host{
		bus:       notifications,
		subject:   cfg.Notify.Subject,
		sessionID: logger.SessionID(),
		logger:    logger,
		metrics:   metrics,
	}
	return h.run(ctx, app, outbox)
}

// loadConfig applies the config file, environment and flags in that order.
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.appTickSet {
		cfg.Ticks.AppMS = opts.appTickMS
	}
	if opts.renderTickSet {
		cfg.Ticks.RenderMS = opts.renderTickMS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openBus(cfg *config.Config) (bus.Bus, error) {
	if cfg.Notify.NATSURL == "" {
		return bus.NewMemoryBus(), nil
	}
	busCfg := bus.DefaultNATSConfig()
	busCfg.URL = cfg.Notify.NATSURL
	b, err := bus.NewNATSBus(busCfg)
	if err != nil {
		return nil, fmt.Errorf("notification bus: %w", err)
	}
	return b, nil
}
