package engine

import "math"

type aggStats struct {
	Sum  float64
	Rows int
}

// mean divides by at least 1 so an empty group averages to 0.
func (a aggStats) mean() float64 {
	n := a.Rows
	if n == 0 {
		n = 1
	}
	return a.Sum / float64(n)
}

// Summary compares average traffic on event days against other days.
type Summary struct {
	EventMean    float64
	NonEventMean float64
	Diff         float64
	EventRows    int
	NonEventRows int
}

// RoundedSummary is Summary as the chart shows it.
type RoundedSummary struct {
	EventMean    int64
	NonEventMean int64
	Diff         int64
}

// roundHalfUp rounds .5 toward +Inf, so -2.5 becomes -2.
func roundHalfUp(f float64) int64 {
	return int64(math.Floor(f + 0.5))
}

// Rounded rounds each figure independently; Diff is rounded from the raw
// difference, not recomputed from the rounded means.
func (s Summary) Rounded() RoundedSummary {
	return RoundedSummary{
		EventMean:    roundHalfUp(s.EventMean),
		NonEventMean: roundHalfUp(s.NonEventMean),
		Diff:         roundHalfUp(s.Diff),
	}
}

// Aggregate splits records into event and non-event days and averages the
// count column of key for each group. Unparsable counts contribute 0 but
// still count as a row.
func Aggregate(records []*Record, key AgeMetricKey) Summary {
	var event, none aggStats
	for _, r := range records {
		v := float64(fastInt(r.Count(key)))
		if r.HasEvent() {
			event.Sum += v
			event.Rows++
		} else {
			none.Sum += v
			none.Rows++
		}
	}

	s := Summary{
		EventMean:    event.mean(),
		NonEventMean: none.mean(),
		EventRows:    event.Rows,
		NonEventRows: none.Rows,
	}
	s.Diff = s.EventMean - s.NonEventMean
	return s
}

// Compute runs Filter then Aggregate for one selection.
func Compute(records []*Record, sel FilterSelection) ([]*Record, Summary) {
	filtered := Filter(records, sel)
	return filtered, Aggregate(filtered, sel.Age)
}
