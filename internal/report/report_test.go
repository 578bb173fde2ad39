package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/mail-topology/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "connected_components_epsilon_0.6.txt", Filename(0.6))
	assert.Equal(t, "connected_components_epsilon_0.txt", Filename(0))
	assert.Equal(t, "connected_components_epsilon_1.25.txt", Filename(1.25))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zap.NewNop())

	components := []core.Component{
		{Label: 0, Members: []string{"a@example.com", "b@example.com"}},
		{Label: 1, Members: []string{"c@example.com"}},
	}

	path, err := w.Write(components, 0.6)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "connected_components_epsilon_0.6.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "Cluster 0: a@example.com, b@example.com\nCluster 1: c@example.com\n"
	assert.Equal(t, want, string(data))
}

func TestWrite_OverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zap.NewNop())

	_, err := w.Write([]core.Component{
		{Label: 0, Members: []string{"a@example.com"}},
		{Label: 1, Members: []string{"b@example.com"}},
	}, 0.6)
	require.NoError(t, err)

	path, err := w.Write([]core.Component{
		{Label: 0, Members: []string{"c@example.com"}},
	}, 0.6)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Cluster 0: c@example.com\n", string(data))
}

func TestWrite_EmptyComponents(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zap.NewNop())

	path, err := w.Write(nil, 0.1)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestWrite_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, zap.NewNop())

	_, err := w.Write([]core.Component{{Label: 0, Members: []string{"a@x"}}}, 0.5)
	require.NoError(t, err)
}
