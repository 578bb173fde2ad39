package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/mail-topology/internal/core"
	"github.com/mikey/mail-topology/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
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

// run executes one clustering run and prints the resulting components
func run(
	logger *zap.Logger,
	service *core.AnalysisService,
	source core.MessageSource,
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

	fmt.Printf("Senders analyzed: %d\n", summary.SenderCount)
	fmt.Printf("Epsilon:          %g\n", summary.Epsilon)
	fmt.Printf("Clusters:         %d\n", len(summary.Components))
	for _, c := range summary.Components {
		fmt.Printf("  Cluster %d: %s\n", c.Label, strings.Join(c.Members, ", "))
	}
	fmt.Printf("Report written to %s\n", summary.ReportPath)

	return nil
}
