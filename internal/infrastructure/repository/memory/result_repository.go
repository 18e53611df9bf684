package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/minicrushers/minitracker/internal/domain/result"
)

// ResultRepository keeps the times collection in memory. It backs tests and
// local dry runs; the semantics match the mongo and postgres backends.
type ResultRepository struct {
	mu   sync.RWMutex
	days map[string]result.DailyResult
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{days: make(map[string]result.DailyResult)}
}

func (r *ResultRepository) GetByDate(_ context.Context, date time.Time) (result.DailyResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day, ok := r.days[result.Normalize(date).Format(result.DateLayout)]
	if !ok {
		return result.DailyResult{}, false, nil
	}
	day.Entries = day.Entries.Clone()
	return day, true, nil
}

func (r *ResultRepository) Upsert(_ context.Context, day result.DailyResult) (result.DailyResult, result.ChangeSet, error) {
	if err := day.Validate(); err != nil {
		return result.DailyResult{}, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := day.Date.Format(result.DateLayout)
	existing, found := r.days[key]
	if !found {
		stored := day
		stored.Entries = day.Entries.Clone()
		r.days[key] = stored
		return day, result.ChangeSet(day.Entries.Clone()), nil
	}

	if existing.Entries.Equal(day.Entries) {
		existing.Entries = existing.Entries.Clone()
		return existing, result.ChangeSet{}, nil
	}

	changes := result.Diff(existing.Entries, day.Entries)
	existing.Entries = day.Entries.Clone()
	r.days[key] = existing

	existing.Entries = existing.Entries.Clone()
	return existing, changes, nil
}

func (r *ResultRepository) ListHistory(_ context.Context) ([]result.DailyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.DailyResult, 0, len(r.days))
	for _, day := range r.days {
		day.Entries = day.Entries.Clone()
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
