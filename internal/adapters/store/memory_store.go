package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// ErrRunNotFound is returned when no rows are stored for a run
var ErrRunNotFound = errors.New("no feature rows stored for run")

// MemoryStore is an in-memory implementation of the FeatureStore interface
type MemoryStore struct {
	runs   map[string][]core.SenderFeatures
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory feature store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		runs:   make(map[string][]core.SenderFeatures),
		logger: logger,
	}
}

// Save stores the feature rows computed during a run
func (s *MemoryStore) Save(ctx context.Context, runID string, rows []core.SenderFeatures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]core.SenderFeatures, len(rows))
	copy(stored, rows)
	s.runs[runID] = stored

	s.logger.Debug("Stored feature rows",
		zap.String("run_id", runID),
		zap.Int("rows", len(rows)))
	return nil
}

// GetRun retrieves the feature rows stored for a run
func (s *MemoryStore) GetRun(ctx context.Context, runID string) ([]core.SenderFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	out := make([]core.SenderFeatures, len(rows))
	copy(out, rows)
	return out, nil
}

// DeleteRun removes all rows stored for a run
func (s *MemoryStore) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, runID)
	return nil
}
