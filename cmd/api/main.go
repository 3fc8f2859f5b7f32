package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galhub/internal/app"
	"galhub/internal/server"

	logger "github.com/Bparsons0904/goLogger"
)

// shutdownTimeout bounds how long in-flight requests get to finish once a
// termination signal arrives.
const shutdownTimeout = 5 * time.Second

func main() {
	log := logger.New("main")

	if err := run(log); err != nil {
		log.Er("server exited with error", err)
		os.Exit(1)
	}

	log.Info("shutdown complete")
}

func run(log logger.Logger) error {
	application, err := app.New()
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	appServer, err := server.New(application)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appServer.Listen(application.Config.ServerPort)
	}()

	// Block until the OS asks us to stop or the listener dies on its own.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := appServer.FiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Er("server forced to shutdown", err)
	}

	// The deferred application.Close tears down the scheduler and database.
	return nil
}
