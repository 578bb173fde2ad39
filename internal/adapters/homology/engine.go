// Package homology provides an in-process persistence engine for dimension
// zero. It computes the full pairwise distance matrix under the supplied
// metric and derives the H0 diagram by single-linkage merging: every point
// is born at 0 and dies when its component is absorbed into another; the
// last surviving component never dies.
package homology

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// Engine computes zero-dimensional persistence over a finite metric space
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new persistence engine
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Compute returns the persistence diagrams up to maxDim and the pairwise
// distance matrix, row/column order aligned with the matrix identifiers.
// Only dimension zero carries data; higher requested dimensions come back
// as empty diagrams.
func (e *Engine) Compute(ctx context.Context, m *core.FeatureMatrix, metric core.Metric, maxDim int) (*core.PersistenceResult, error) {
	if metric == nil {
		return nil, fmt.Errorf("metric must not be nil")
	}
	if maxDim < 0 {
		return nil, fmt.Errorf("maximum dimension must be non-negative, got %d", maxDim)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := m.Len()
	distances := pairwise(m.Rows, metric)

	diagrams := make([][]core.Interval, maxDim+1)
	diagrams[0] = h0Diagram(distances)

	e.logger.Debug("Computed persistence",
		zap.Int("points", n),
		zap.Int("h0_intervals", len(diagrams[0])))

	return &core.PersistenceResult{
		Diagrams:  diagrams,
		Distances: distances,
	}, nil
}

// pairwise evaluates the metric for every pair of rows. The diagonal is
// zero and the matrix is symmetric by construction: each pair is computed
// once and mirrored.
func pairwise(rows [][]float64, metric core.Metric) [][]float64 {
	n := len(rows)
	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric(rows[i], rows[j])
			distances[i][j] = d
			distances[j][i] = d
		}
	}
	return distances
}

type edge struct {
	u, v   int
	weight float64
}

// h0Diagram derives the dimension-zero diagram by Kruskal-style
// single-linkage merging over edges sorted by ascending distance. Stable
// sorting keeps the merge order, and therefore the diagram, deterministic
// when distances tie.
func h0Diagram(distances [][]float64) []core.Interval {
	n := len(distances)
	if n == 0 {
		return nil
	}

	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{u: i, v: j, weight: distances[i][j]})
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].weight < edges[j].weight
	})

	// Disjoint-set with path compression and union by rank
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	intervals := make([]core.Interval, 0, n)
	for _, ed := range edges {
		ru, rv := find(ed.u), find(ed.v)
		if ru == rv {
			continue
		}
		// One component dies at the merge distance
		intervals = append(intervals, core.Interval{Birth: 0, Death: ed.weight})
		if rank[ru] < rank[rv] {
			ru, rv = rv, ru
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}
	}

	// The surviving component never dies
	intervals = append(intervals, core.Interval{Birth: 0, Death: math.Inf(1)})
	return intervals
}
