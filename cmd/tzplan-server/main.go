// Package main implements the tzplan web server for time-zone meeting conversion.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
	"github.com/codeGROOVE-dev/tzplan/pkg/server"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzplan/pkg/zonecache"
)

var (
	port      = flag.String("port", "8080", "Port for web server (or set PORT)")
	cacheSize = flag.Int("cache-size", 10_000, "Number of converted responses to cache, 0 disables (or set TZPLAN_CACHE_SIZE)")
	cacheTTL  = flag.Duration("cache-ttl", 12*time.Hour, "How long cached responses live")
	rateLimit = flag.Int("rate-limit", 60, "Conversions per client IP per minute, 0 disables")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	version   = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("tzplan Server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if v := os.Getenv("PORT"); v != "" && !isFlagSet("port") {
		*port = v
	}
	if v := os.Getenv("TZPLAN_CACHE_SIZE"); v != "" && !isFlagSet("cache-size") {
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Error("Invalid TZPLAN_CACHE_SIZE", "value", v, "error", err)
			os.Exit(1)
		}
		*cacheSize = n
	}

	logger.Info("Server configuration",
		"port", *port,
		"verbose", *verbose,
		"cache_size", *cacheSize,
		"cache_ttl", *cacheTTL,
		"rate_limit", *rateLimit)

	zones := zonecache.New(tzconvert.LocationProvider{}, logger)
	p := planner.New(planner.WithLogger(logger), planner.WithProvider(zones))

	srv, err := server.New(p, server.Config{
		CacheSize: *cacheSize,
		CacheTTL:  *cacheTTL,
		RateLimit: *rateLimit,
	}, logger)
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              ":" + *port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", *port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped", "zone_cache", zones.Stats())
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
