package factory

import (
	"fmt"

	"github.com/mikey/mail-topology/internal/adapters/homology"
	"github.com/mikey/mail-topology/internal/config"
	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// EngineFactory creates persistence engines based on configuration
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEngine creates a persistence engine based on the configuration
func (f *EngineFactory) CreateEngine() (core.PersistenceEngine, error) {
	engineType := f.cfg.GetString("engine.type")

	switch engineType {
	case "native":
		return homology.NewEngine(f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", engineType)
	}
}

// GetMaxDimension returns the configured maximum homology dimension
func (f *EngineFactory) GetMaxDimension() int {
	return f.cfg.GetInt("engine.max_dimension")
}
