package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2Lynk/DeathLogger-server/api"
	"github.com/2Lynk/DeathLogger-server/config"
	"github.com/2Lynk/DeathLogger-server/internal/intake"
	"github.com/2Lynk/DeathLogger-server/internal/service"
	"github.com/2Lynk/DeathLogger-server/internal/store"
	"github.com/2Lynk/DeathLogger-server/internal/telemetry"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Serve command flags
	disableNewRelic bool
	serverPort      int
	gracefulTimeout int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the death log server",
	Long: `Starts the HTTP server that accepts death reports from the addon
and serves the HTML pages and JSON API over the recorded deaths.

The server respects the configuration in config.yaml or specified via the --config flag.
It will gracefully shut down on receiving SIGINT or SIGTERM signals.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&disableNewRelic, "disable-newrelic", false, "Disable New Relic monitoring")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "Server port (overrides config file)")
	serveCmd.Flags().IntVar(&gracefulTimeout, "graceful-timeout", 10, "Graceful shutdown timeout in seconds")
}

// startServer initializes and starts the HTTP server
func startServer() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"store_path":       cfg.Store.Path,
		"uploads_dir":      cfg.Uploads.Dir,
		"newrelic_enabled": cfg.NewRelic.Enabled && !disableNewRelic,
	}).Info("Initializing service components...")

	// Initialize the flat-file store
	fileStore, err := store.NewFileStore(cfg.Store.Path, log)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Initialize the screenshot intake
	screenshotIntake := intake.New(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, log)

	// Initialize the service layer
	svc := service.NewService(fileStore, log)

	// Initialize New Relic if enabled
	var nrApp *newrelic.Application
	if !disableNewRelic {
		nrApp, err = telemetry.InitNewRelic(cfg.NewRelic)
		if err != nil {
			log.Warnf("Failed to initialize New Relic: %v", err)
		}
	}

	// Initialize and start the server
	server := api.NewServer(cfg, log, nrApp, svc, screenshotIntake)
	go func() {
		if err := server.Start(); err != nil {
			log.Infof("Server stopped: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(gracefulTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server successfully shutdown")
}
