package result

import (
	"fmt"
	"time"
)

// DateLayout is the canonical textual form of a puzzle-day key.
const DateLayout = "2006-01-02"

// Entries maps a participant's scraped display name to their elapsed solve
// time in seconds. Names are kept exactly as scraped; no identity
// normalization happens anywhere in the pipeline.
type Entries map[string]int

// ChangeSet is the strictly additive diff of an upsert: participants that
// appear in the new entries but were absent from the stored ones, with their
// new times. Value changes on existing participants are never part of it.
type ChangeSet map[string]int

// DailyResult is the canonical record for one puzzle day.
type DailyResult struct {
	// Date is the puzzle day at UTC midnight and is the record's unique key.
	Date time.Time
	// Weekday is 0-6 with Monday=0, always derived from Date.
	Weekday int
	Entries Entries
}

// New builds a DailyResult for the given calendar date, deriving Weekday so
// the two can never disagree.
func New(date time.Time, entries Entries) DailyResult {
	date = Normalize(date)
	return DailyResult{
		Date:    date,
		Weekday: WeekdayIndex(date),
		Entries: entries,
	}
}

// Normalize truncates an instant to its UTC-midnight date key.
func Normalize(date time.Time) time.Time {
	date = date.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex converts time.Weekday (Sunday=0) to the stored Monday=0 form.
func WeekdayIndex(date time.Time) int {
	return (int(date.UTC().Weekday()) + 6) % 7
}

func (d DailyResult) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("daily result date is required")
	}
	if !d.Date.Equal(Normalize(d.Date)) {
		return fmt.Errorf("daily result date %s is not a UTC midnight date", d.Date)
	}
	if d.Weekday != WeekdayIndex(d.Date) {
		return fmt.Errorf("weekday %d does not match date %s", d.Weekday, d.Date.Format(DateLayout))
	}
	for name, seconds := range d.Entries {
		if name == "" {
			return fmt.Errorf("empty participant name on %s", d.Date.Format(DateLayout))
		}
		if seconds < 0 {
			return fmt.Errorf("negative time %d for %q on %s", seconds, name, d.Date.Format(DateLayout))
		}
	}
	return nil
}

// Winner returns the participant with the minimum elapsed time. Ties are
// broken by lexicographically smallest name so the result is deterministic
// regardless of map iteration order. ok is false when Entries is empty.
func (d DailyResult) Winner() (username string, seconds int, ok bool) {
	for name, elapsed := range d.Entries {
		if !ok || elapsed < seconds || (elapsed == seconds && name < username) {
			username, seconds, ok = name, elapsed, true
		}
	}
	return username, seconds, ok
}

// Equal reports structural equality of two entries mappings.
func (e Entries) Equal(other Entries) bool {
	if len(e) != len(other) {
		return false
	}
	for name, seconds := range e {
		if got, ok := other[name]; !ok || got != seconds {
			return false
		}
	}
	return true
}

// Clone returns an independent copy so repositories can hand out values
// without sharing mutable state with callers.
func (e Entries) Clone() Entries {
	if e == nil {
		return nil
	}
	out := make(Entries, len(e))
	for name, seconds := range e {
		out[name] = seconds
	}
	return out
}

// Diff computes the ChangeSet of replacing old with new: only names absent
// from old are reported.
func Diff(old, updated Entries) ChangeSet {
	changes := make(ChangeSet)
	for name, seconds := range updated {
		if _, known := old[name]; !known {
			changes[name] = seconds
		}
	}
	return changes
}
