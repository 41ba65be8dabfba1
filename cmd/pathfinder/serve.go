package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/channel"
	"github.com/alvmarrod/web-pathfinder/internal/metrics"
	"github.com/alvmarrod/web-pathfinder/internal/resolver"
	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/alvmarrod/web-pathfinder/internal/server"
	"github.com/alvmarrod/web-pathfinder/internal/version"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve path searches over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(root)
		},
	}
}

func runServe(root *rootOptions) error {
	logrus.Infof("Web Pathfinder v%s starting...", version.Version)

	cfg, err := root.loadConfig()
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		return err
	}

	logrus.Infof("Configuration loaded: addr=%s, profile=%s, depth=%d, branch=%d",
		cfg.ListenAddr, cfg.Profile, cfg.MaxDepth, cfg.BranchLimit)

	if cfg.Level() != logrus.DebugLevel && cfg.Level() != logrus.TraceLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	// Initialize metrics tracker
	tracker := metrics.NewTracker()

	// Wire resolver, engine and websocket channel
	pages := resolver.New(cfg.ResolverConfig(), log)
	engine := search.NewEngine(pages, cfg.SearchOptions(), tracker, log)
	handler := channel.NewHandler(engine, cfg.DefaultMaxNodes, log)

	srv := server.New(cfg.ListenAddr, server.NewRouter(cfg.WSPath, handler, log))

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s (websocket %s)", cfg.ListenAddr, cfg.WSPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Start progress logger
	var wg sync.WaitGroup
	stopProgress := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				logrus.Info(tracker.LogProgress())
			case <-stopProgress:
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	terminationReason := "signal"
	select {
	case sig := <-sigChan:
		logrus.Infof("Received signal: %v", sig)
	case err, ok := <-serveErr:
		if ok {
			logrus.Errorf("Server failed: %v", err)
			terminationReason = "server_error"
		}
	}

	logrus.Info("Initiating graceful shutdown...")
	logrus.Info("Step 1/3: Stopping HTTP server...")

	close(stopProgress)

	// Hijacked websocket connections are not tracked by Shutdown; their
	// searches end when the process exits
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Warnf("Server shutdown timeout: %v", err)
	}

	logrus.Info("Step 2/3: Waiting for background goroutines...")
	wg.Wait()

	logrus.Info("Step 3/3: Writing final metrics...")
	logrus.Info("Final stats: " + tracker.LogProgress())

	if err := tracker.WriteToFile(cfg.MetricsPath, terminationReason); err != nil {
		logrus.Errorf("Failed to write metrics: %v", err)
	} else {
		logrus.Infof("Metrics written to %s", cfg.MetricsPath)
	}

	logrus.Info("Graceful shutdown complete. Goodbye!")

	if terminationReason == "server_error" {
		return errors.New("server stopped unexpectedly")
	}
	return nil
}
