package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/minicrushers/minitracker/internal/domain/result"
)

// notCompletedSentinel is the leaderboard's placeholder for a participant
// who has not solved today's puzzle yet.
const notCompletedSentinel = "--"

// selfSuffix marks the authenticated account's own row on the page.
const selfSuffix = "(you)"

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// NormalizeCapture converts a raw scrape into the canonical per-day record.
// Rows with the not-completed sentinel or an unparseable time are skipped;
// a duplicate display name keeps the later row. An unparseable date header
// wraps ErrParse and is fatal for the run.
func NormalizeCapture(capture RawCapture) (result.DailyResult, error) {
	date, err := parseDateHeader(capture.Year, capture.Month, capture.Day)
	if err != nil {
		return result.DailyResult{}, err
	}

	entries := make(result.Entries, len(capture.Entries))
	for _, row := range capture.Entries {
		seconds, ok := parseClock(row.RawTime)
		if !ok {
			continue
		}
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(row.DisplayName), selfSuffix))
		if name == "" {
			continue
		}
		entries[name] = seconds
	}

	return result.New(date, entries), nil
}

func parseDateHeader(year, month, day string) (time.Time, error) {
	monthNumber, ok := monthsByName[strings.ToLower(strings.TrimSpace(month))]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown month %q in date header", ErrParse, month)
	}

	yearNumber, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q in date header", ErrParse, year)
	}

	dayNumber, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(day), ",")))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q in date header", ErrParse, day)
	}
	if dayNumber < 1 || dayNumber > 31 {
		return time.Time{}, fmt.Errorf("%w: day %d out of range in date header", ErrParse, dayNumber)
	}

	return time.Date(yearNumber, monthNumber, dayNumber, 0, 0, 0, 0, time.UTC), nil
}

// parseClock converts an "MM:SS" string to total seconds. The sentinel and
// any malformed value report !ok so the row is skipped, never crashed on.
func parseClock(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == notCompletedSentinel {
		return 0, false
	}

	minuteText, secondText, found := strings.Cut(raw, ":")
	if !found {
		return 0, false
	}
	minutes, err := strconv.Atoi(minuteText)
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.Atoi(secondText)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, false
	}

	return minutes*60 + seconds, true
}
