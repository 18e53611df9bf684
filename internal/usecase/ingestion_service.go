package usecase

import (
	"fmt"

	"context"

	"github.com/minicrushers/minitracker/internal/domain/report"
	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/platform/logging"
)

// IngestionService runs the scrape-and-ingest pipeline: fetch a capture,
// normalize it, reconcile it against the stored day, and announce whatever
// turned out to be genuinely new.
type IngestionService struct {
	provider   LeaderboardProvider
	resultRepo result.Repository
	notifier   Notifier
	logger     *logging.Logger
}

func NewIngestionService(
	provider LeaderboardProvider,
	resultRepo result.Repository,
	notifier Notifier,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider:   provider,
		resultRepo: resultRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// IngestLatest performs one ingest run. Re-running with an unchanged
// leaderboard is a no-op: the upsert reports an empty change set and nothing
// is announced. Store mutations are never rolled back on delivery failure.
func (s *IngestionService) IngestLatest(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestLatest")
	defer span.End()

	if s.provider == nil {
		return fmt.Errorf("%w: leaderboard provider is not configured", ErrDependencyUnavailable)
	}

	capture, err := s.provider.FetchLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}

	day, err := NormalizeCapture(capture)
	if err != nil {
		return fmt.Errorf("normalize capture: %w", err)
	}

	dateKey := day.Date.Format(result.DateLayout)
	if len(day.Entries) == 0 {
		s.logger.InfoContext(ctx, "no entries on leaderboard yet", "date", dateKey)
		return nil
	}

	stored, changes, err := s.resultRepo.Upsert(ctx, day)
	if err != nil {
		return fmt.Errorf("upsert daily result date=%s collection=times: %w", dateKey, err)
	}

	if len(changes) == 0 {
		s.logger.InfoContext(ctx, "daily result unchanged", "date", dateKey, "entries", len(stored.Entries))
		return nil
	}

	s.logger.InfoContext(ctx, "new times recorded",
		"date", dateKey,
		"new_entries", len(changes),
		"total_entries", len(stored.Entries),
	)

	if s.notifier == nil {
		return nil
	}
	for _, msg := range report.Completions(changes) {
		if err := s.notifier.Send(ctx, msg); err != nil {
			return fmt.Errorf("announce completion date=%s: %w", dateKey, err)
		}
	}
	if err := s.notifier.Send(ctx, report.CurrentStanding(stored)); err != nil {
		return fmt.Errorf("announce current standing date=%s: %w", dateKey, err)
	}

	return nil
}
