// Package puzzleday resolves which leaderboard day an instant belongs to.
//
// The Mini publishes the next day's puzzle before midnight: at 18:00 local
// time on weekends and 22:00 on weekdays the leaderboard rolls over, so the
// "puzzle day" is not the calendar day of the clock reading it.
package puzzleday

import "time"

// Mode selects which boundary ResolveBoundary reports.
type Mode int

const (
	// Current is the day whose results are still being collected.
	Current Mode = iota
	// Previous is the most recently fully-elapsed day.
	Previous
)

const (
	weekdayCutoverHour = 22
	weekendCutoverHour = 18
)

// ResolveBoundary returns the puzzle day for now as a date at UTC midnight.
//
// The cutover check is evaluated on now converted into the reference zone,
// so it fires only while that local day's hour is in [cutover, 24); once the
// local clock passes midnight the hour resets and the next day's own cutover
// applies.
func ResolveBoundary(now time.Time, loc *time.Location, mode Mode) time.Time {
	local := now.In(loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	if local.Hour() >= cutoverHour(local.Weekday()) {
		// Today's puzzle is closed and the next one is live.
		if mode == Current {
			return date.AddDate(0, 0, 1)
		}
		return date
	}

	if mode == Current {
		return date
	}
	return date.AddDate(0, 0, -1)
}

func cutoverHour(day time.Weekday) int {
	if day == time.Saturday || day == time.Sunday {
		return weekendCutoverHour
	}
	return weekdayCutoverHour
}
