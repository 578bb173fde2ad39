package features

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// WeekdayMode selects how the weekday feature is computed
type WeekdayMode string

const (
	// WeekdayAverage rounds the mean weekday index (the default)
	WeekdayAverage WeekdayMode = "average"
	// WeekdayDominant picks the most frequent weekday, averaging ties
	WeekdayDominant WeekdayMode = "dominant"
)

// Aggregator converts per-sender timestamp lists into feature rows and
// min-max scales them into a feature matrix. Each sender gets its own
// freshly initialized accumulator; nothing carries over between senders.
type Aggregator struct {
	weekdayMode WeekdayMode
	logger      *zap.Logger
}

// NewAggregator creates a new feature aggregator
func NewAggregator(mode WeekdayMode, logger *zap.Logger) (*Aggregator, error) {
	switch mode {
	case WeekdayAverage, WeekdayDominant:
	default:
		return nil, fmt.Errorf("unsupported weekday mode: %q", mode)
	}
	return &Aggregator{weekdayMode: mode, logger: logger}, nil
}

// Build assembles one feature row per sender and returns both the raw rows
// and the scaled matrix. Senders are ordered lexicographically so the matrix
// row order is deterministic.
func (a *Aggregator) Build(res *core.ExtractionResult) ([]core.SenderFeatures, *core.FeatureMatrix, error) {
	senders := make([]string, 0, len(res.CountsBySender))
	for sender := range res.CountsBySender {
		senders = append(senders, sender)
	}
	sort.Strings(senders)

	rows := make([]core.SenderFeatures, 0, len(senders))
	for _, sender := range senders {
		times := res.TimesBySender[sender]
		if len(times) == 0 {
			return nil, nil, fmt.Errorf("sender %q has a count but no timestamps", sender)
		}

		weekday := AverageWeekday(times)
		if a.weekdayMode == WeekdayDominant {
			weekday = DominantWeekday(times)
		}

		rows = append(rows, core.SenderFeatures{
			Sender:     sender,
			MailCount:  res.CountsBySender[sender],
			AvgSeconds: AverageSeconds(times),
			AvgWeekday: weekday,
		})
	}

	matrix := scale(rows)
	a.logger.Debug("Built feature matrix",
		zap.Int("senders", len(rows)),
		zap.String("weekday_mode", string(a.weekdayMode)))

	return rows, matrix, nil
}

// AverageSeconds returns the rounded mean of seconds since midnight over
// the given timestamps. The result is always in [0, 86400). Means halfway
// between two integers round to the even neighbour.
func AverageSeconds(times []time.Time) int {
	total := 0
	for _, t := range times {
		total += t.Hour()*3600 + t.Minute()*60 + t.Second()
	}
	return int(math.RoundToEven(float64(total) / float64(len(times))))
}

// AverageWeekday returns the rounded mean weekday index over the given
// timestamps, with Monday=0 .. Sunday=6. Halfway means round to even,
// like AverageSeconds.
func AverageWeekday(times []time.Time) int {
	total := 0
	for _, t := range times {
		total += weekdayIndex(t)
	}
	return int(math.RoundToEven(float64(total) / float64(len(times))))
}

// DominantWeekday returns the most frequent weekday index. When several
// weekdays tie for the maximum, their mean is rounded instead. This is a
// variant feature; the default pipeline uses AverageWeekday.
func DominantWeekday(times []time.Time) int {
	var freq [7]int
	for _, t := range times {
		freq[weekdayIndex(t)]++
	}

	max := 0
	for _, n := range freq {
		if n > max {
			max = n
		}
	}

	sum, tied := 0, 0
	for day, n := range freq {
		if n == max {
			sum += day
			tied++
		}
	}
	if tied == 1 {
		return sum
	}
	return int(math.RoundToEven(float64(sum) / float64(tied)))
}

// weekdayIndex maps time.Weekday (Sunday=0) onto Monday=0 .. Sunday=6
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// scale applies min-max scaling independently per column. A column with
// zero range scales to 0 for every row.
func scale(rows []core.SenderFeatures) *core.FeatureMatrix {
	senders := make([]string, len(rows))
	raw := make([][]float64, len(rows))
	for i, row := range rows {
		senders[i] = row.Sender
		raw[i] = []float64{
			float64(row.MailCount),
			float64(row.AvgSeconds),
			float64(row.AvgWeekday),
		}
	}

	scaled := make([][]float64, len(raw))
	for i := range raw {
		scaled[i] = make([]float64, len(raw[i]))
	}

	if len(raw) > 0 {
		for col := 0; col < len(raw[0]); col++ {
			min, max := raw[0][col], raw[0][col]
			for _, row := range raw {
				if row[col] < min {
					min = row[col]
				}
				if row[col] > max {
					max = row[col]
				}
			}
			if max == min {
				continue // zero range scales to 0
			}
			for i, row := range raw {
				scaled[i][col] = (row[col] - min) / (max - min)
			}
		}
	}

	return &core.FeatureMatrix{Senders: senders, Rows: scaled}
}
