// Package metric defines the composite distance function over the
// three-feature sender space: mail count, seconds since midnight, weekday.
// The sub-metrics live on different domains, so the composite combines them
// the product-metric way: the Euclidean norm of the per-feature distances.
package metric

import (
	"math"
)

// SecondsPerDay is the circumference of the time-of-day ring
const SecondsPerDay = 24 * 60 * 60

// Count is the distance between two mail counts
func Count(a, b float64) float64 {
	return math.Abs(a - b)
}

// Seconds is the circular distance between two points on the one-day ring,
// measured in seconds since midnight. Its maximum value is half the ring,
// 43200 seconds.
func Seconds(a, b float64) float64 {
	return math.Min(mod(a-b, SecondsPerDay), mod(b-a, SecondsPerDay))
}

// Weekday is the distance between two weekday indices. It is linear, not
// circular: Sunday (6) and Monday (0) count as six days apart.
func Weekday(a, b float64) float64 {
	return math.Abs(a - b)
}

// Composite is the distance between two 3-feature vectors, columns ordered
// {mail count, seconds, weekday}. It is symmetric, non-negative and zero on
// identical inputs.
func Composite(a, b []float64) float64 {
	d1 := Count(a[0], b[0])
	d2 := Seconds(a[1], b[1])
	d3 := Weekday(a[2], b[2])
	return math.Sqrt(d1*d1 + d2*d2 + d3*d3)
}

// mod is the floored modulo: the result always carries the sign of the
// divisor, matching (a-b) mod n on the ring.
func mod(x, n float64) float64 {
	m := math.Mod(x, n)
	if m < 0 {
		m += n
	}
	return m
}
