package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josericodata/FlightTrackingApp/internal/airlines"
	"github.com/josericodata/FlightTrackingApp/internal/airports"
	"github.com/josericodata/FlightTrackingApp/internal/api"
	"github.com/josericodata/FlightTrackingApp/internal/config"
	"github.com/josericodata/FlightTrackingApp/internal/flightmap"
	"github.com/josericodata/FlightTrackingApp/internal/opensky"
	"github.com/josericodata/FlightTrackingApp/internal/pipeline"
	"github.com/josericodata/FlightTrackingApp/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	// Load configuration with fallback logic
	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting flight tracking server",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the airport reference table. The server cannot estimate arrivals
	// without it, so a failed load is fatal.
	loadCtx, loadCancel := context.WithTimeout(ctx, time.Duration(cfg.Airports.TimeoutSecs)*time.Second)
	airportStore, err := airports.Load(loadCtx, cfg.Airports.Source, time.Duration(cfg.Airports.TimeoutSecs)*time.Second, log)
	loadCancel()
	if err != nil {
		if errors.Is(err, airports.ErrDataUnavailable) {
			log.Error("Airport reference data unavailable", logger.Error(err), logger.String("source", cfg.Airports.Source))
		} else {
			log.Error("Failed to load airport reference data", logger.Error(err))
		}
		os.Exit(1)
	}
	log.Info("Loaded airport reference table", logger.Int("airports", airportStore.Len()))

	// Create the airline directory service
	airlineClient := airlines.NewClient(
		cfg.Airlines.SourceURL,
		time.Duration(cfg.Airlines.TimeoutSecs)*time.Second,
		log,
	)
	airlineService := airlines.NewService(airlineClient, log)

	// Create the live feed client
	feedClient := opensky.NewClient(
		cfg.Feed.SourceURL,
		cfg.Feed.AccessToken,
		time.Duration(cfg.Feed.TimeoutSecs)*time.Second,
		log,
	)

	// Create the enrichment pipeline
	pipelineService := pipeline.NewService(
		feedClient,
		airportStore,
		time.Duration(cfg.Cache.TTLSecs)*time.Second,
		log,
	)

	// Create the map builder
	mapBuilder := flightmap.NewBuilder(cfg.Map.DefaultZoom, cfg.Map.FocusedZoom)

	// Create API router
	router := api.NewRouter(pipelineService, airlineService, mapBuilder, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSecs) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error on startup", logger.String("addr", server.Addr), logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")

	// Cancel the main context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", logger.Error(err))
	}

	log.Info("Server fully stopped")
}
