// Package report builds the outbound announcement payloads. Everything here
// is pure formatting over already-computed values; delivery belongs to the
// webhook client and chart rendering to the charts package.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/domain/standing"
)

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Embed is a title/description pair in the webhook's embed format.
type Embed struct {
	Title       string
	Description string
}

// File is an attachment relayed as-is.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is one webhook post.
type Message struct {
	Content string
	Embeds  []Embed
	Files   []File
}

// RankedEntry is one row of a solve-time table, fastest first.
type RankedEntry struct {
	Username string
	Seconds  int
}

// FormatClock renders elapsed seconds as MM:SS. The minutes component is not
// clamped: 3661 renders as "61:01".
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// WeekdayName maps the stored Monday=0 index to its English name.
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday >= len(weekdayNames) {
		return "Unknown"
	}
	return weekdayNames[weekday]
}

// Rank orders entries by elapsed time ascending, names ascending on ties.
func Rank(entries result.Entries) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for name, seconds := range entries {
		ranked = append(ranked, RankedEntry{Username: name, Seconds: seconds})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Seconds != ranked[j].Seconds {
			return ranked[i].Seconds < ranked[j].Seconds
		}
		return ranked[i].Username < ranked[j].Username
	})
	return ranked
}

// Completions announces each newly appeared solve, one message per
// participant, in deterministic ranked order.
func Completions(changes result.ChangeSet) []Message {
	ranked := Rank(result.Entries(changes))
	messages := make([]Message, 0, len(ranked))
	for _, entry := range ranked {
		messages = append(messages, Message{
			Content: fmt.Sprintf("%s completed the Mini in %s", entry.Username, FormatClock(entry.Seconds)),
		})
	}
	return messages
}

// CurrentStanding formats the intra-day standings table for a day whose
// results are still collecting.
func CurrentStanding(day result.DailyResult) Message {
	return Message{
		Embeds: []Embed{{
			Title:       fmt.Sprintf("Current %s Standing", WeekdayName(day.Weekday)),
			Description: standingTable(Rank(day.Entries)),
		}},
	}
}

// FinalReport announces a completed day: the winner line with their running
// streak, the final solve-time table, and the cumulative wins table.
func FinalReport(winner string, day result.DailyResult, standings []standing.Record) Message {
	streak := 1
	for _, record := range standings {
		if record.Username == winner {
			streak = record.WinStreak
			break
		}
	}

	return Message{
		Content: fmt.Sprintf(
			"%s won the %s Mini and is on a %d day streak",
			winner, WeekdayName(day.Weekday), streak,
		),
		Embeds: []Embed{
			{
				Title:       fmt.Sprintf("Final %s Report", WeekdayName(day.Weekday)),
				Description: standingTable(Rank(day.Entries)),
			},
			{
				Title:       "Total Wins",
				Description: winsTable(standings),
			},
		},
	}
}

// ChartMessage wraps rendered chart images for delivery.
func ChartMessage(files ...File) Message {
	return Message{Files: files}
}

func standingTable(ranked []RankedEntry) string {
	var b strings.Builder
	for place, entry := range ranked {
		fmt.Fprintf(&b, "%d. %s - %s\n", place+1, entry.Username, FormatClock(entry.Seconds))
	}
	return b.String()
}

func winsTable(standings []standing.Record) string {
	var b strings.Builder
	for place, record := range standings {
		fmt.Fprintf(&b, "%d. %s - %d wins\n", place+1, record.Username, record.Wins)
	}
	return b.String()
}
