// Package classify assigns every day of the year a visual state.
//
// A daily record is the list of step counts from January 1st up to and
// including today. Its last entry is always today, which is drawn as a day
// number rather than a colored circle, so today's steps never count towards
// the goal statistics until the day is over.
//
// Malformed entries are the caller's concern: parsers drop them before the
// record reaches this package, which shifts every later day by one.
package classify

import (
	"fmt"
	"math"
)

// DaysInYear is the number of slots classified.
const DaysInYear = 365

// State is the visual state of one day slot.
type State uint8

const (
	// Future days have no data yet.
	Future State = iota
	// Missed days have data below the goal.
	Missed
	// Met days reached the goal.
	Met
	// Today is the last day in the record.
	Today
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Future:
		return "future"
	case Missed:
		return "missed"
	case Met:
		return "met"
	case Today:
		return "today"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Classify returns one State per day slot (always DaysInYear entries).
//
// Today takes precedence over the goal comparison. Entries past the last slot
// are ignored.
func Classify(record []int, goal int) []State {
	states := make([]State, DaysInYear)
	today := len(record) - 1
	for i := range states {
		switch {
		case i == today:
			states[i] = Today
		case i < len(record) && record[i] >= goal:
			states[i] = Met
		case i < len(record):
			states[i] = Missed
		default:
			states[i] = Future
		}
	}
	return states
}

// Counts tallies states by kind.
type Counts struct {
	Met, Missed, Future, Today int
}

// Count tallies states.
func Count(states []State) Counts {
	var c Counts
	for _, s := range states {
		switch s {
		case Met:
			c.Met++
		case Missed:
			c.Missed++
		case Future:
			c.Future++
		case Today:
			c.Today++
		}
	}
	return c
}

// Stats are the figures shown in the summary line.
type Stats struct {
	DaysLeft   int // days of the year not yet in the record
	PercentHit int // share of completed days (today excluded) that met the goal, 0..100
}

// ComputeStats derives Stats from the record, excluding today.
func ComputeStats(record []int, goal int) Stats {
	s := Stats{DaysLeft: max(DaysInYear-len(record), 0)}
	if len(record) < 2 {
		return s
	}

	past := record[:len(record)-1]
	hits := 0
	for _, steps := range past {
		if steps >= goal {
			hits++
		}
	}
	s.PercentHit = int(math.Floor(100*float64(hits)/float64(len(past)) + 0.5))
	return s
}

// Summary formats s as the wallpaper's bottom line.
func (s Stats) Summary() string {
	return fmt.Sprintf("%dd left · %d%% hit", s.DaysLeft, s.PercentHit)
}
