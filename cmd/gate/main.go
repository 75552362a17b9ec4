package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"github.com/partnerbi/bibot/internal/infrastructure/gate"
	"github.com/partnerbi/bibot/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// endpointList collects repeated -wait flags
type endpointList []gate.Endpoint

func (e *endpointList) String() string {
	return gate.FormatEndpoints(*e)
}

func (e *endpointList) Set(value string) error {
	ep, err := gate.ParseEndpoint(value)
	if err != nil {
		return err
	}
	*e = append(*e, ep)
	return nil
}

func main() {
	var (
		waits    endpointList
		interval time.Duration
		maxWait  time.Duration
		parallel bool
		logLevel string
	)

	flag.Var(&waits, "wait", "Endpoint to wait for as host:port (repeatable; default: configured MySQL and Redis)")
	flag.DurationVar(&interval, "interval", 0, "Delay between connection attempts (default: gate.interval from config)")
	flag.DurationVar(&maxWait, "max-wait", 0, "Give up after this long; 0 waits forever (default: gate.max_wait from config)")
	flag.BoolVar(&parallel, "parallel", false, "Poll all endpoints concurrently")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	argv := flag.Args()
	if len(argv) == 0 {
		log.Error("No command given", zap.Error(gate.ErrNoCommand))
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if len(waits) == 0 {
		waits = endpointList{
			{Name: "mysql", Host: cfg.Database.Host, Port: cfg.Database.Port},
			{Name: "redis", Host: cfg.Redis.Host, Port: cfg.Redis.Port},
		}
	}
	if interval == 0 {
		interval = cfg.Gate.Interval
	}
	if maxWait == 0 {
		maxWait = cfg.Gate.MaxWait
	}
	if !parallel {
		parallel = cfg.Gate.Parallel
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Gating startup on dependencies",
		zap.String("endpoints", gate.FormatEndpoints(waits)),
		zap.Duration("interval", interval),
		zap.Duration("max_wait", maxWait),
		zap.Bool("parallel", parallel),
		zap.String("command", strings.Join(argv, " ")),
	)

	waiter := gate.NewWaiter(waits,
		gate.WithInterval(interval),
		gate.WithMaxWait(maxWait),
		gate.WithParallel(parallel),
		gate.WithLogger(log),
	)

	if err := waiter.Wait(ctx); err != nil {
		log.Fatal("Dependencies did not become available", zap.Error(err))
	}
	stop()

	log.Info("All dependencies available, launching command",
		zap.String("command", strings.Join(argv, " ")),
	)
	_ = logger.Sync(log)

	if err := gate.Handoff(argv); err != nil {
		if errors.Is(err, gate.ErrNoCommand) {
			printUsage()
			os.Exit(2)
		}
		log.Fatal("Failed to launch command", zap.Error(err))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Partner BI Startup Gate

Waits until each dependency accepts a TCP connection, then replaces
itself with the given command.

Usage:
  gate [flags] <command> [args...]

Flags:
  -wait host:port     Endpoint to wait for (repeatable; defaults to the
                      configured MySQL and Redis endpoints)
  -interval duration  Delay between connection attempts (default 1s)
  -max-wait duration  Give up after this long; 0 waits forever
  -parallel           Poll all endpoints concurrently
  -log-level string   Log level: debug, info, warn, error (default info)

Examples:
  # Wait for the configured MySQL and Redis, then start the bot
  gate python -m app.bot

  # Wait for explicit endpoints with a 2m budget
  gate -wait db.internal:3306 -wait cache.internal:6379 -max-wait 2m ./bot`)
}
