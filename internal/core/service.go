package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisService is the core service that drives one batch run of the
// pipeline: extract, aggregate, compute persistence, cluster, report.
type AnalysisService struct {
	source       MessageSource
	extractor    RecordExtractor
	features     FeatureBuilder
	metric       Metric
	engine       PersistenceEngine
	clusters     ComponentExtractor
	report       ReportSink
	store        FeatureStore
	storeEnabled bool
	logger       *zap.Logger
	epsilon      float64
	maxDim       int
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	source MessageSource,
	extractor RecordExtractor,
	features FeatureBuilder,
	metric Metric,
	engine PersistenceEngine,
	clusters ComponentExtractor,
	report ReportSink,
	store FeatureStore,
	storeEnabled bool,
	logger *zap.Logger,
	epsilon float64,
	maxDim int,
) *AnalysisService {
	return &AnalysisService{
		source:       source,
		extractor:    extractor,
		features:     features,
		metric:       metric,
		engine:       engine,
		clusters:     clusters,
		report:       report,
		store:        store,
		storeEnabled: storeEnabled,
		logger:       logger,
		epsilon:      epsilon,
		maxDim:       maxDim,
	}
}

// Run executes the full pipeline once and returns a summary of the run.
// Per-message problems are skipped inside the extractor; any error returned
// here is structural and aborts the run.
func (s *AnalysisService) Run(ctx context.Context) (*AnalysisReport, error) {
	runID := uuid.New().String()
	s.logger.Info("Starting analysis run",
		zap.String("run_id", runID),
		zap.Float64("epsilon", s.epsilon))

	res, err := s.extractor.Extract(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("failed to extract mail records: %w", err)
	}
	s.logger.Info("Extracted mail records",
		zap.Int("senders", len(res.CountsBySender)),
		zap.Int("accepted", res.Stats.Accepted),
		zap.Int("skipped_missing_header", res.Stats.MissingHeader),
		zap.Int("skipped_bad_address", res.Stats.BadAddress),
		zap.Int("skipped_bad_date", res.Stats.BadDate),
		zap.Int("skipped_ignored", res.Stats.Ignored))

	rows, matrix, err := s.features.Build(res)
	if err != nil {
		return nil, fmt.Errorf("failed to build feature matrix: %w", err)
	}

	if s.storeEnabled {
		if err := s.store.Save(ctx, runID, rows); err != nil {
			s.logger.Error("Failed to store feature rows", zap.Error(err))
		}
	}

	persistence, err := s.engine.Compute(ctx, matrix, s.metric, s.maxDim)
	if err != nil {
		return nil, fmt.Errorf("failed to compute persistence: %w", err)
	}

	components, err := s.clusters.Components(persistence.Distances, matrix.Senders, s.epsilon)
	if err != nil {
		return nil, fmt.Errorf("failed to extract connected components: %w", err)
	}
	s.logger.Info("Extracted connected components",
		zap.Int("components", len(components)),
		zap.Float64("epsilon", s.epsilon))

	path, err := s.report.Write(components, s.epsilon)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	s.logger.Info("Wrote cluster report", zap.String("path", path))

	return &AnalysisReport{
		RunID:       runID,
		Epsilon:     s.epsilon,
		SenderCount: matrix.Len(),
		Components:  components,
		ReportPath:  path,
		AnalyzedAt:  time.Now(),
	}, nil
}
