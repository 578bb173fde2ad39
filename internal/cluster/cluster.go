package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// ErrConsistency is returned when the number of labeled points does not
// match the number of identifiers. It marks a broken engine contract and
// aborts the run.
var ErrConsistency = errors.New("labeled point count does not match identifier count")

// Extractor thresholds a pairwise distance matrix at epsilon and computes
// the connected components of the resulting proximity graph.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new cluster extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Components builds a fresh adjacency from the distance matrix (the matrix
// itself is never mutated, so the engine's output stays inspectable) and
// returns the connected components with members mapped back to sender
// identifiers. Components are ordered by their smallest member identifier
// and labeled sequentially from 0.
func (e *Extractor) Components(distances [][]float64, senders []string, epsilon float64) ([]core.Component, error) {
	if epsilon < 0 {
		return nil, fmt.Errorf("epsilon must be non-negative, got %g", epsilon)
	}
	n := len(senders)
	if len(distances) != n {
		return nil, fmt.Errorf("%w: matrix has %d rows for %d identifiers", ErrConsistency, len(distances), n)
	}
	for i, row := range distances {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns for %d identifiers", ErrConsistency, i, len(row), n)
		}
	}

	adjacent := adjacency(distances, epsilon)

	// BFS over the proximity graph, visiting indices in order so the
	// labeling is stable for a fixed input.
	seen := make([]bool, n)
	var groups [][]int
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		queue := []int{start}
		seen[start] = true
		var members []int
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			members = append(members, u)
			for v := 0; v < n; v++ {
				if adjacent[u][v] && !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(members)
		groups = append(groups, members)
	}

	labeled := 0
	for _, g := range groups {
		labeled += len(g)
	}
	if labeled != n {
		return nil, fmt.Errorf("%w: labeled %d points for %d identifiers", ErrConsistency, labeled, n)
	}

	components := make([]core.Component, len(groups))
	for i, g := range groups {
		members := make([]string, len(g))
		for j, idx := range g {
			members[j] = senders[idx]
		}
		components[i] = core.Component{Members: members}
	}

	// Order by smallest member identifier for reproducible output
	sort.Slice(components, func(i, j int) bool {
		return smallestMember(components[i]) < smallestMember(components[j])
	})
	for i := range components {
		components[i].Label = i
	}

	e.logger.Debug("Computed connected components",
		zap.Int("points", n),
		zap.Int("components", len(components)),
		zap.Float64("epsilon", epsilon))

	return components, nil
}

// smallestMember returns the lexicographically smallest member identifier
func smallestMember(c core.Component) string {
	min := c.Members[0]
	for _, m := range c.Members[1:] {
		if m < min {
			min = m
		}
	}
	return min
}

// adjacency produces the boolean proximity graph: (i,j) is connected when
// distances[i][j] <= epsilon.
func adjacency(distances [][]float64, epsilon float64) [][]bool {
	n := len(distances)
	adjacent := make([][]bool, n)
	for i := range distances {
		adjacent[i] = make([]bool, n)
		for j, d := range distances[i] {
			adjacent[i][j] = d <= epsilon
		}
	}
	return adjacent
}
