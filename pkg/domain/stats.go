package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoTimes is returned when statistics are requested for a session in which
// no attempt ended in a valid click.
var ErrNoTimes = errors.New("no valid attempts recorded")

// Stats are the figures shown after each valid click and on the results screen.
type Stats struct {
	Count   int           `json:"count"`
	Last    time.Duration `json:"last"`
	Best    time.Duration `json:"best"`    // minimum
	Average time.Duration `json:"average"` // mean
}

// Summarize computes stats over times in recorded order.
func Summarize(times []time.Duration) (Stats, error) {
	if len(times) == 0 {
		return Stats{}, ErrNoTimes
	}
	best := times[0]
	var sum time.Duration
	for _, t := range times {
		sum += t
		if t < best {
			best = t
		}
	}
	return Stats{
		Count:   len(times),
		Last:    times[len(times)-1],
		Best:    best,
		Average: sum / time.Duration(len(times)),
	}, nil
}

// Seconds formats d as fractional seconds with millisecond precision, e.g. "0.208s".
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// Summary is a single plain-text line describing the stats.
func (s Stats) Summary() string {
	return fmt.Sprintf("average %s, best %s over %d valid attempts",
		Seconds(s.Average), Seconds(s.Best), s.Count)
}
