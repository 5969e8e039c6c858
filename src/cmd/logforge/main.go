// FILE: logforge/src/cmd/logforge/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logforge/src/internal/config"
	"logforge/src/internal/metrics"
	"logforge/src/internal/service"
	"logforge/src/internal/status"
	"logforge/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	initOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGFORGE_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(nil)
	if err != nil {
		fatalError(1, "Failed to load config: %v\n", err)
	}
	flagCfg.apply(cfg)

	if err := initializeLogger(cfg); err != nil {
		fatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "logforge starting",
		"version", version.String(),
		"config_file", flagCfg.ConfigFile,
		"output", cfg.Output.Type,
		"format", cfg.Format.Mode,
		"stop_after_seconds", cfg.Generator.StopAfterSeconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	svc := service.New(ctx, logger)

	session, err := svc.StartSession(cfg)
	if err != nil {
		logger.Error("msg", "Failed to start session", "error", err)
		fatalError(1, "Failed to start session: %v\n", err)
	}

	var statusServer *status.Server
	if cfg.Status.Enabled {
		statusServer = status.NewServer(&cfg.Status, svc, logger)
		if err := statusServer.Start(); err != nil {
			logger.Error("msg", "Failed to start status server", "error", err)
			fatalError(1, "Failed to start status server: %v\n", err)
		}
	}

	go metricsReporter(ctx, session)

	// Wait for the run to finish on its own (bounded runs) or for a
	// shutdown signal.
	var snap metrics.Snapshot
	select {
	case <-session.Done():
		var runErr error
		snap, runErr = session.Wait()
		if runErr != nil {
			printOut("Run aborted: %v\n", runErr)
		}
	case sig := <-sigChan:
		logger.Info("msg", "Shutdown signal received, starting graceful shutdown...",
			"signal", sig.String())
		snap = stopWithTimeout(svc, session)
	}

	if statusServer != nil {
		statusServer.Shutdown()
	}

	printOut("%s\n", metrics.FormatSnapshot(snap))
	logger.Info("msg", "Shutdown complete")
}

// stopWithTimeout stops the session but refuses to hang forever on a
// stuck sink.
func stopWithTimeout(svc *service.Service, session *service.Session) metrics.Snapshot {
	done := make(chan metrics.Snapshot, 1)
	go func() {
		snap, _ := svc.StopSession(session.ID)
		done <- snap
	}()

	select {
	case snap := <-done:
		return snap
	case <-time.After(10 * time.Second):
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
		return metrics.Snapshot{}
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			printErr("Logger shutdown error: %v\n", err)
		}
	}
}
