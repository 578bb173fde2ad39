package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-topology/internal/cluster"
	"github.com/mikey/mail-topology/internal/config"
	"github.com/mikey/mail-topology/internal/core"
	"github.com/mikey/mail-topology/internal/extract"
	"github.com/mikey/mail-topology/internal/factory"
	"github.com/mikey/mail-topology/internal/features"
	"github.com/mikey/mail-topology/internal/ignore"
	"github.com/mikey/mail-topology/internal/logging"
	"github.com/mikey/mail-topology/internal/metric"
	"github.com/mikey/mail-topology/internal/report"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register ignore checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *ignore.Checker {
		extractorCfg := cfg.GetExtractor()
		return ignore.NewChecker(extractorCfg.IgnoredDomains, extractorCfg.IgnoredAddresses, logger)
	}); err != nil {
		return nil, err
	}

	// Register message source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MessageSource, error) {
		return f.CreateMessageSource()
	}); err != nil {
		return nil, err
	}

	// Register record extractor
	if err := container.Provide(func(cfg *config.Config, checker *ignore.Checker, logger *zap.Logger) (core.RecordExtractor, error) {
		return extract.NewExtractor(cfg.GetExtractor().Threshold, checker, logger)
	}); err != nil {
		return nil, err
	}

	// Register feature builder
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.FeatureBuilder, error) {
		return features.NewAggregator(features.WeekdayMode(cfg.GetFeatures().WeekdayMode), logger)
	}); err != nil {
		return nil, err
	}

	// Register the composite metric
	if err := container.Provide(func() core.Metric {
		return metric.Composite
	}); err != nil {
		return nil, err
	}

	// Register persistence engine and maximum dimension
	if err := container.Provide(func(f *factory.EngineFactory) (core.PersistenceEngine, error) {
		return f.CreateEngine()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.EngineFactory) int {
		return f.GetMaxDimension()
	}); err != nil {
		return nil, err
	}

	// Register cluster extractor
	if err := container.Provide(func(logger *zap.Logger) core.ComponentExtractor {
		return cluster.NewExtractor(logger)
	}); err != nil {
		return nil, err
	}

	// Register epsilon
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetCluster().Epsilon
	}); err != nil {
		return nil, err
	}

	// Register report writer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.ReportSink {
		return report.NewWriter(cfg.GetReport().OutputDir, logger)
	}); err != nil {
		return nil, err
	}

	// Register feature store and enabled flag
	if err := container.Provide(func(f *factory.StoreFactory) (core.FeatureStore, error) {
		return f.CreateFeatureStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.StoreFactory) bool {
		return f.IsStoreEnabled()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(core.NewAnalysisService); err != nil {
		return nil, err
	}

	return container, nil
}
