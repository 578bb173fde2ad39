package core

import (
	"math"
	"time"
)

// MailRecord is a single accepted message reduced to the two fields the
// pipeline cares about. Records are transient; they exist only between
// extraction and aggregation.
type MailRecord struct {
	Sender    string
	Timestamp time.Time
}

// SenderFeatures holds the raw (unscaled) behavioral features of one sender
type SenderFeatures struct {
	Sender     string
	MailCount  int
	AvgSeconds int // seconds since midnight, in [0, 86400)
	AvgWeekday int // Monday=0 .. Sunday=6
}

// FeatureMatrix is the scaled feature matrix handed to the persistence
// engine. Rows[i] belongs to Senders[i]; columns are
// {mail count, seconds since midnight, weekday} after min-max scaling.
type FeatureMatrix struct {
	Senders []string
	Rows    [][]float64
}

// Len returns the number of points in the matrix
func (m *FeatureMatrix) Len() int {
	return len(m.Senders)
}

// Interval is one birth/death pair from a persistence diagram. A Death of
// +Inf marks a feature that never dies within the filtration.
type Interval struct {
	Birth float64
	Death float64
}

// Infinite reports whether the interval never dies
func (iv Interval) Infinite() bool {
	return math.IsInf(iv.Death, 1)
}

// PersistenceResult is the persistence engine's output: one diagram per
// homology dimension plus the full pairwise distance matrix. Distances is
// symmetric with a zero diagonal, and its row/column order is aligned with
// the identifier order of the input feature matrix.
type PersistenceResult struct {
	Diagrams  [][]Interval
	Distances [][]float64
}

// Component is one cluster of senders: all members are mutually reachable
// through pairwise distances at or below the chosen epsilon.
type Component struct {
	Label   int
	Members []string
}

// ExtractionStats counts the messages the extractor skipped, by reason
type ExtractionStats struct {
	Accepted      int
	MissingHeader int
	BadAddress    int
	BadDate       int
	Ignored       int
}

// ExtractionResult is the extractor's output, restricted to senders meeting
// the activity threshold.
type ExtractionResult struct {
	CountsBySender map[string]int
	TimesBySender  map[string][]time.Time
	Stats          ExtractionStats
}

// AnalysisReport summarizes one completed pipeline run
type AnalysisReport struct {
	RunID       string
	Epsilon     float64
	SenderCount int
	Components  []Component
	ReportPath  string
	AnalyzedAt  time.Time
}
