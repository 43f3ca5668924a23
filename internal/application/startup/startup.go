// Package startup prepares and runs the preview server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/application/container"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/http/server"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 30 * time.Second

// Initialize performs the startup sequence and blocks until SIGINT or SIGTERM.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `
  █▀▄▀█ █▀█ █▄ █ █▀ ▀█▀ █▀▀ █▀█   █ █ █ █ █▀▄ █▀▀ █▀▀ ▀█▀
  █ ▀ █ █▄█ █ ▀█ ▄█  █  ██▄ █▀▄   ▀▄▀▄▀ █ █▄▀ █▄█ ██▄  █
` + "\033[97m" + `
  not intended for production use
` + "\033[0m")

	// Step 1: Logger
	stepStart := time.Now()
	logger, err := container.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger.LogStartupPhase("logger", time.Since(stepStart), true, map[string]any{"level": config.LogLevel})

	// Step 2: Remote database reachability
	if config.TursoDatabaseURL != "" {
		stepStart = time.Now()
		if err := database.PingTurso(config.TursoDatabaseURL, config.TursoAuthToken, logger); err != nil {
			logger.LogStartupPhase("turso", time.Since(stepStart), false, map[string]any{"error": err.Error()})
			return fmt.Errorf("turso database unreachable: %w", err)
		}
		logger.LogStartupPhase("turso", time.Since(stepStart), true, nil)
	}

	// Step 3: Container (database, schema, widgets, sidebars)
	stepStart = time.Now()
	appContainer, err := container.NewContainer(logger)
	if err != nil {
		logger.LogStartupPhase("container", time.Since(stepStart), false, map[string]any{"error": err.Error()})
		return err
	}
	defer appContainer.Close()
	logger.LogStartupPhase("container", time.Since(stepStart), true, map[string]any{
		"widgets":  len(appContainer.Widgets.Keys()),
		"sidebars": len(appContainer.Sidebars.IDs()),
	})

	// Step 4: Live preview hub
	go appContainer.PreviewHub.Run(ctx)
	logger.Startup().Info("Live preview hub started")

	// Step 5: Cache cleanup
	go appContainer.Cleanup.Start(ctx)

	// Step 6: HTTP server
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		serverErr <- httpServer.Start()
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port,
		"breakerImage", config.BreakerImageURL)

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		if err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			return err
		}
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures gin and the standard logger used before the
// channeled logger exists.
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
