package core

import (
	"context"
)

// RawMessage exposes the two header strings the pipeline reads from each
// message. An empty string means the header is absent.
type RawMessage struct {
	From string
	Date string
}

// MessageSource yields raw messages in mailbox order. Next returns io.EOF
// once the source is exhausted.
type MessageSource interface {
	// Next returns the next message from the source
	Next() (*RawMessage, error)

	// Close releases the underlying handle
	Close() error
}

// RecordExtractor normalizes raw messages into per-sender counts and
// timestamp lists, applying the minimum-activity threshold.
type RecordExtractor interface {
	Extract(ctx context.Context, src MessageSource) (*ExtractionResult, error)
}

// FeatureBuilder turns an extraction result into raw feature rows and the
// min-max scaled feature matrix.
type FeatureBuilder interface {
	Build(res *ExtractionResult) ([]SenderFeatures, *FeatureMatrix, error)
}

// Metric is a pure, deterministic distance function over two feature vectors
type Metric func(a, b []float64) float64

// PersistenceEngine converts a feature matrix and a metric into persistence
// diagrams and a pairwise distance matrix. Implementations must be
// deterministic for fixed inputs and must keep the distance matrix aligned
// with the input identifier order.
type PersistenceEngine interface {
	Compute(ctx context.Context, m *FeatureMatrix, metric Metric, maxDim int) (*PersistenceResult, error)
}

// ComponentExtractor thresholds a distance matrix at epsilon and computes
// connected components over the resulting proximity graph.
type ComponentExtractor interface {
	Components(distances [][]float64, senders []string, epsilon float64) ([]Component, error)
}

// ReportSink serializes the components of one run to a durable artifact and
// returns its path.
type ReportSink interface {
	Write(components []Component, epsilon float64) (string, error)
}

// FeatureStore persists the raw feature rows computed for a run
type FeatureStore interface {
	// Save stores the feature rows computed during a run
	Save(ctx context.Context, runID string, rows []SenderFeatures) error

	// GetRun retrieves the feature rows stored for a run
	GetRun(ctx context.Context, runID string) ([]SenderFeatures, error)

	// DeleteRun removes all rows stored for a run
	DeleteRun(ctx context.Context, runID string) error
}
