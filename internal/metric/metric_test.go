package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Equal(t, 0.0, Count(3, 3))
	assert.Equal(t, 2.0, Count(5, 3))
	assert.Equal(t, 2.0, Count(3, 5))
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "identical", a: 100, b: 100, want: 0},
		{name: "short way", a: 100, b: 400, want: 300},
		{name: "across midnight", a: 86399, b: 1, want: 2},
		{name: "exact opposite", a: 0, b: 43200, want: 43200},
		{name: "noon to midnight", a: 43200, b: 0, want: 43200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Seconds(tt.a, tt.b))
		})
	}
}

func TestSeconds_Properties(t *testing.T) {
	values := []float64{0, 1, 3600, 43199, 43200, 43201, 86399}
	for _, a := range values {
		assert.Equal(t, 0.0, Seconds(a, a), "d(a,a) must be 0 for a=%v", a)
		for _, b := range values {
			assert.Equal(t, Seconds(a, b), Seconds(b, a), "symmetry for a=%v b=%v", a, b)
			assert.LessOrEqual(t, Seconds(a, b), 43200.0, "half the ring is the maximum")
		}
	}
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0.0, Weekday(3, 3))
	// Linear on purpose: Sunday and Monday count as six days apart
	assert.Equal(t, 6.0, Weekday(6, 0))
}

func TestComposite(t *testing.T) {
	a := []float64{3, 100, 2}
	b := []float64{7, 100, 5}
	// d_count=4, d_time=0, d_weekday=3 → sqrt(16+9)=5
	assert.InDelta(t, 5.0, Composite(a, b), 1e-12)
}

func TestComposite_Properties(t *testing.T) {
	vectors := [][]float64{
		{0, 0, 0},
		{1, 86399, 6},
		{5, 43200, 3},
		{2, 100, 1},
	}

	for _, x := range vectors {
		assert.Equal(t, 0.0, Composite(x, x), "d(x,x) must be 0")
		for _, y := range vectors {
			assert.Equal(t, Composite(x, y), Composite(y, x), "metric must be symmetric")
			assert.GreaterOrEqual(t, Composite(x, y), 0.0, "metric must be non-negative")
		}
	}
}
