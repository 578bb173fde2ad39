package factory

import (
	"fmt"

	"github.com/mikey/mail-topology/internal/adapters/mbox"
	"github.com/mikey/mail-topology/internal/config"
	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// SourceFactory creates message sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageSource creates a message source based on the configuration.
// Opening the source happens here, so an unavailable source fails the run
// before any pipeline work starts.
func (f *SourceFactory) CreateMessageSource() (core.MessageSource, error) {
	sourceType := f.cfg.GetString("source.type")

	switch sourceType {
	case "mbox":
		path := f.cfg.GetString("source.mbox_path")
		f.logger.Info("Opening mbox source", zap.String("path", path))
		return mbox.Open(path, f.logger)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}
