package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/minicrushers/minitracker/internal/domain/puzzleday"
	"github.com/minicrushers/minitracker/internal/domain/report"
	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/domain/standing"
	"github.com/minicrushers/minitracker/internal/platform/logging"
)

// StandingsService credits completed days and publishes final reports.
type StandingsService struct {
	resultRepo   result.Repository
	standingRepo standing.Repository
	notifier     Notifier
	charts       ChartRenderer
	location     *time.Location
	logger       *logging.Logger
}

func NewStandingsService(
	resultRepo result.Repository,
	standingRepo standing.Repository,
	notifier Notifier,
	charts ChartRenderer,
	location *time.Location,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		resultRepo:   resultRepo,
		standingRepo: standingRepo,
		notifier:     notifier,
		charts:       charts,
		location:     location,
		logger:       logger,
	}
}

// ProcessCompletedDay credits the day's winner and reads back the updated
// standings. A day with no entries wraps ErrNoEntries.
func (s *StandingsService) ProcessCompletedDay(ctx context.Context, day result.DailyResult) (string, []standing.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ProcessCompletedDay")
	defer span.End()

	dateKey := day.Date.Format(result.DateLayout)

	winner, seconds, ok := day.Winner()
	if !ok {
		return "", nil, fmt.Errorf("%w: date=%s", ErrNoEntries, dateKey)
	}

	if err := s.standingRepo.RecordWin(ctx, winner); err != nil {
		return "", nil, fmt.Errorf("record win date=%s winner=%s collection=winners: %w", dateKey, winner, err)
	}

	standings, err := s.standingRepo.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list standings collection=winners: %w", err)
	}

	s.logger.InfoContext(ctx, "day winner credited",
		"date", dateKey,
		"winner", winner,
		"time", report.FormatClock(seconds),
	)

	return winner, standings, nil
}

// FinalizeDay resolves the most recently completed puzzle day, credits its
// winner, and announces the final report with charts. It is NOT idempotent:
// running it twice for the same day double-counts the win, so the scheduler
// must invoke it exactly once per day.
func (s *StandingsService) FinalizeDay(ctx context.Context, now time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.FinalizeDay")
	defer span.End()

	date := puzzleday.ResolveBoundary(now, s.location, puzzleday.Previous)
	dateKey := date.Format(result.DateLayout)

	day, found, err := s.resultRepo.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("load daily result date=%s collection=times: %w", dateKey, err)
	}
	if !found {
		return fmt.Errorf("%w: no daily result for date=%s in collection=times", ErrNotFound, dateKey)
	}

	winner, standings, err := s.ProcessCompletedDay(ctx, day)
	if err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}

	// The store is already mutated; from here on a failure is surfaced but
	// nothing is rolled back.
	if err := s.notifier.Send(ctx, report.FinalReport(winner, day, standings)); err != nil {
		return fmt.Errorf("announce final report date=%s: %w", dateKey, err)
	}

	if s.charts == nil {
		return nil
	}
	files, err := s.renderCharts(ctx, now, standings)
	if err != nil {
		return fmt.Errorf("render charts date=%s: %w", dateKey, err)
	}
	if len(files) > 0 {
		if err := s.notifier.Send(ctx, report.ChartMessage(files...)); err != nil {
			return fmt.Errorf("announce charts date=%s: %w", dateKey, err)
		}
	}

	return nil
}

func (s *StandingsService) renderCharts(ctx context.Context, now time.Time, standings []standing.Record) ([]report.File, error) {
	var files []report.File

	if len(standings) > 0 {
		usernames := make([]string, 0, len(standings))
		wins := make([]int, 0, len(standings))
		for _, record := range standings {
			usernames = append(usernames, record.Username)
			wins = append(wins, record.Wins)
		}
		image, err := s.charts.WinsBar(usernames, wins)
		if err != nil {
			return nil, fmt.Errorf("wins bar chart: %w", err)
		}
		files = append(files, report.File{Name: "total-wins.png", ContentType: "image/png", Data: image})
	}

	history, err := s.resultRepo.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history collection=times: %w", err)
	}
	winsByWeekday := weekdayWinners(history, puzzleday.ResolveBoundary(now, s.location, puzzleday.Previous))
	if len(winsByWeekday) > 0 {
		image, err := s.charts.WeekdayWinnerPies(winsByWeekday)
		if err != nil {
			return nil, fmt.Errorf("weekday pie charts: %w", err)
		}
		files = append(files, report.File{Name: "weekday-wins.png", ContentType: "image/png", Data: image})
	}

	return files, nil
}

// weekdayWinners folds history into per-weekday winner tallies, skipping any
// trailing record dated after the most recently completed day (that one is
// still accumulating) and days with no entries.
func weekdayWinners(history []result.DailyResult, lastCompleted time.Time) map[int]map[string]int {
	out := make(map[int]map[string]int)
	for _, day := range history {
		if day.Date.After(lastCompleted) {
			continue
		}
		winner, _, ok := day.Winner()
		if !ok {
			continue
		}
		if out[day.Weekday] == nil {
			out[day.Weekday] = make(map[string]int)
		}
		out[day.Weekday][winner]++
	}
	return out
}
