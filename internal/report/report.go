package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// Writer serializes the connected components of one run to a text file in
// the configured output directory. The file is fully overwritten each run.
type Writer struct {
	outputDir string
	logger    *zap.Logger
}

// NewWriter creates a new report writer
func NewWriter(outputDir string, logger *zap.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: logger}
}

// Filename returns the deterministic report name for an epsilon value
func Filename(epsilon float64) string {
	return "connected_components_epsilon_" + strconv.FormatFloat(epsilon, 'g', -1, 64) + ".txt"
}

// Write emits one line per component, in the extractor's component order,
// and returns the path of the written file.
func (w *Writer) Write(components []core.Component, epsilon float64) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, Filename(epsilon))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	for _, c := range components {
		if _, err := fmt.Fprintf(buf, "Cluster %d: %s\n", c.Label, strings.Join(c.Members, ", ")); err != nil {
			return "", fmt.Errorf("failed to write report line: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	w.logger.Debug("Report written",
		zap.String("path", path),
		zap.Int("clusters", len(components)))

	return path, nil
}
