package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/di"
	"github.com/abra-it/alert-triage/internal/roster"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	source core.AlertSource,
	accounts *roster.Roster,
	draftClient core.DraftClient,
	ledger core.Ledger,
) error {
	defer logger.Sync()

	// Start the alert source
	if err := source.Start(); err != nil {
		logger.Fatal("Failed to start alert source", zap.Error(err))
		return err
	}

	// Clear the daily ledger at local midnight
	stopRollover := make(chan struct{})
	go func() {
		for {
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
			select {
			case <-time.After(time.Until(midnight)):
				if err := ledger.ClearDaily(context.Background()); err != nil {
					logger.Error("Failed to clear daily ledger", zap.Error(err))
				} else {
					logger.Info("Cleared daily ledger for new day")
				}
			case <-stopRollover:
				return
			}
		}
	}()

	// Handle graceful shutdown; SIGHUP reloads the account roster
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigCh
		if sig == syscall.SIGHUP {
			if err := accounts.Reload(); err != nil {
				logger.Error("Failed to reload account roster", zap.Error(err))
			} else {
				logger.Info("Reloaded account roster", zap.Int("accounts", accounts.Len()))
			}
			continue
		}
		break
	}
	logger.Info("Shutting down...")
	close(stopRollover)

	// Stop the alert source
	if err := source.Stop(); err != nil {
		logger.Error("Failed to stop alert source", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := draftClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close drafting client", zap.Error(err))
		}
	}
	if closer, ok := ledger.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close ledger", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
