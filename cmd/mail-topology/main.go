package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mikey/mail-topology/internal/core"
	"github.com/mikey/mail-topology/internal/di"
	"go.uber.org/zap"
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
	service *core.AnalysisService,
	source core.MessageSource,
	store core.FeatureStore,
) error {
	defer logger.Sync()
	defer func() {
		if err := source.Close(); err != nil {
			logger.Error("Failed to close message source", zap.Error(err))
		}
	}()

	summary, err := service.Run(context.Background())
	if err != nil {
		logger.Error("Analysis run failed", zap.Error(err))
		return err
	}

	logger.Info("Analysis run complete",
		zap.String("run_id", summary.RunID),
		zap.Int("senders", summary.SenderCount),
		zap.Int("components", len(summary.Components)),
		zap.String("report", summary.ReportPath))

	// Stop the store if needed
	if stopper, ok := store.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	return nil
}
