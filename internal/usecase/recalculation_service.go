package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/minicrushers/minitracker/internal/domain/puzzleday"
	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/platform/logging"
)

// Recalculation is an audit view of the winners collection, rebuilt from
// the times history alone.
type Recalculation struct {
	DaysReplayed        int
	WinsByUser          map[string]int
	CurrentStreakHolder string
	CurrentStreakLength int
	MaxStreakLength     int
}

// RecalculationService replays winner selection across the stored history
// without writing anything. It exists to audit (and diagnose repairs for)
// the incrementally maintained winners collection.
type RecalculationService struct {
	resultRepo result.Repository
	location   *time.Location
	logger     *logging.Logger
}

func NewRecalculationService(resultRepo result.Repository, location *time.Location, logger *logging.Logger) *RecalculationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecalculationService{
		resultRepo: resultRepo,
		location:   location,
		logger:     logger,
	}
}

// Replay walks the history in date order applying the same winner selection
// FinalizeDay uses. A trailing record dated after the most recently
// completed puzzle day is excluded: its results are still accumulating.
func (s *RecalculationService) Replay(ctx context.Context, now time.Time) (Recalculation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.Replay")
	defer span.End()

	history, err := s.resultRepo.ListHistory(ctx)
	if err != nil {
		return Recalculation{}, fmt.Errorf("list history collection=times: %w", err)
	}

	lastCompleted := puzzleday.ResolveBoundary(now, s.location, puzzleday.Previous)
	if n := len(history); n > 0 && history[n-1].Date.After(lastCompleted) {
		history = history[:n-1]
	}

	recalc := Recalculation{WinsByUser: make(map[string]int)}
	for _, day := range history {
		winner, _, ok := day.Winner()
		if !ok {
			s.logger.WarnContext(ctx, "skipping day with no entries",
				"date", day.Date.Format(result.DateLayout),
			)
			continue
		}

		recalc.DaysReplayed++
		recalc.WinsByUser[winner]++
		if winner == recalc.CurrentStreakHolder {
			recalc.CurrentStreakLength++
		} else {
			recalc.CurrentStreakHolder = winner
			recalc.CurrentStreakLength = 1
		}
		if recalc.CurrentStreakLength > recalc.MaxStreakLength {
			recalc.MaxStreakLength = recalc.CurrentStreakLength
		}
	}

	return recalc, nil
}
