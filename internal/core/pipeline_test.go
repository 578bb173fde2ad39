package core_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/mail-topology/internal/adapters/homology"
	"github.com/mikey/mail-topology/internal/adapters/mbox"
	"github.com/mikey/mail-topology/internal/adapters/store"
	"github.com/mikey/mail-topology/internal/cluster"
	"github.com/mikey/mail-topology/internal/core"
	"github.com/mikey/mail-topology/internal/extract"
	"github.com/mikey/mail-topology/internal/features"
	"github.com/mikey/mail-topology/internal/ignore"
	"github.com/mikey/mail-topology/internal/metric"
	"github.com/mikey/mail-topology/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// message renders one mbox entry
func message(from, date string) string {
	return "From " + from + " Mon Jun  5 10:00:00 2023\n" +
		"From: " + from + "\n" +
		"Date: " + date + "\n" +
		"Subject: test\n\nbody\n"
}

// TestPipeline_EndToEnd runs the full chain on a small corpus: two senders
// with identical habits and one loner. The twins land in one cluster, the
// loner in another, and the report on disk matches.
func TestPipeline_EndToEnd(t *testing.T) {
	var corpus strings.Builder
	// Twins: same count, same hour, same weekday
	for i := 0; i < 3; i++ {
		corpus.WriteString(message("alice@example.com", "Mon, 5 Jun 2023 09:00:00 +0200"))
		corpus.WriteString(message("bob@example.com", "Mon, 5 Jun 2023 09:00:00 +0200"))
	}
	// Loner: different count, evening sender, different weekday
	for i := 0; i < 9; i++ {
		corpus.WriteString(message("zeke@example.com", "Sat, 10 Jun 2023 22:30:00 +0200"))
	}

	dir := t.TempDir()
	mboxPath := filepath.Join(dir, "corpus.mbox")
	require.NoError(t, os.WriteFile(mboxPath, []byte(corpus.String()), 0644))

	logger := zap.NewNop()
	source, err := mbox.Open(mboxPath, logger)
	require.NoError(t, err)
	defer source.Close()

	extractor, err := extract.NewExtractor(2, ignore.NewChecker(nil, nil, nil), logger)
	require.NoError(t, err)
	builder, err := features.NewAggregator(features.WeekdayAverage, logger)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "out")
	svc := core.NewAnalysisService(
		source,
		extractor,
		builder,
		metric.Composite,
		homology.NewEngine(logger),
		cluster.NewExtractor(logger),
		report.NewWriter(outDir, logger),
		store.NewMemoryStore(logger),
		true,
		logger,
		0.5,
		0,
	)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.SenderCount)
	require.Len(t, summary.Components, 2)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, summary.Components[0].Members)
	assert.Equal(t, []string{"zeke@example.com"}, summary.Components[1].Members)

	data, err := os.ReadFile(filepath.Join(outDir, "connected_components_epsilon_0.5.txt"))
	require.NoError(t, err)
	want := "Cluster 0: alice@example.com, bob@example.com\nCluster 1: zeke@example.com\n"
	assert.Equal(t, want, string(data))
}
