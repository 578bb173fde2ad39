package di

import (
	"flag"

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

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Input flags
	MboxPath  string
	Threshold int

	// Clustering flags
	Epsilon float64

	// Output flags
	OutputDir string

	// Feature flags
	WeekdayMode string

	// Logging flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Input flags
	flag.StringVar(&flags.MboxPath, "mbox", "mail.mbox", "Path to the mbox file to analyze")
	flag.IntVar(&flags.Threshold, "threshold", 1, "Minimum number of mails for a sender to be taken into account")

	// Clustering flags
	flag.Float64Var(&flags.Epsilon, "epsilon", 0.6, "Distance threshold for connected components")

	// Output flags
	flag.StringVar(&flags.OutputDir, "output", ".", "Directory to write the cluster report to")

	// Feature flags
	flag.StringVar(&flags.WeekdayMode, "weekday-mode", "average", "Weekday feature mode (average, dominant)")

	// Logging flags
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}

	// Register message source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MessageSource, error) {
		return f.CreateMessageSource()
	}); err != nil {
		return nil, err
	}

	// Register empty ignore checker for CLI
	if err := container.Provide(func(logger *zap.Logger) *ignore.Checker {
		return ignore.NewChecker(nil, nil, logger)
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

	// Register analysis service with no feature store
	if err := container.Provide(func(
		source core.MessageSource,
		extractor core.RecordExtractor,
		builder core.FeatureBuilder,
		m core.Metric,
		engine core.PersistenceEngine,
		clusters core.ComponentExtractor,
		sink core.ReportSink,
		logger *zap.Logger,
		epsilon float64,
		maxDim int,
	) *core.AnalysisService {
		return core.NewAnalysisService(
			source,
			extractor,
			builder,
			m,
			engine,
			clusters,
			sink,
			nil,   // No feature store for CLI
			false, // Store disabled
			logger,
			epsilon,
			maxDim,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("source.type", "mbox")
	v.Set("source.mbox_path", flags.MboxPath)
	v.Set("extractor.threshold", flags.Threshold)
	v.Set("features.weekday_mode", flags.WeekdayMode)
	v.Set("cluster.epsilon", flags.Epsilon)
	v.Set("report.output_dir", flags.OutputDir)
	v.Set("store.enabled", false)
	v.Set("cli.verbose", flags.Verbose)

	return config.NewFromViper(v)
}
