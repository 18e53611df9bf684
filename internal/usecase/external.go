package usecase

import (
	"context"

	"github.com/minicrushers/minitracker/internal/domain/report"
)

// RawEntry is one scraped leaderboard row before normalization. RawTime is
// either an "MM:SS" clock string or the not-completed sentinel.
type RawEntry struct {
	DisplayName string
	RawTime     string
}

// RawCapture is the scraper's output: the page's own date header (already
// split into its textual fields) plus the rows in page order. The page, not
// the wall clock, is the source of truth for which day this is.
type RawCapture struct {
	Year    string
	Month   string
	Day     string
	Entries []RawEntry
}

// LeaderboardProvider fetches the current leaderboard page and splits it
// into a RawCapture. Fetching and HTML mechanics live behind this interface.
type LeaderboardProvider interface {
	FetchLeaderboard(ctx context.Context) (RawCapture, error)
}

// Notifier delivers one composed message. Implementations own transport
// concerns; a failed delivery surfaces as ErrDelivery.
type Notifier interface {
	Send(ctx context.Context, msg report.Message) error
}

// ChartRenderer produces the PNG images attached to final reports.
type ChartRenderer interface {
	// WinsBar charts cumulative wins per participant.
	WinsBar(usernames []string, wins []int) ([]byte, error)
	// WeekdayWinnerPies charts, for each weekday, how the day's wins are
	// split across participants. Keyed by Monday=0 weekday index.
	WeekdayWinnerPies(winsByWeekday map[int]map[string]int) ([]byte, error)
}
