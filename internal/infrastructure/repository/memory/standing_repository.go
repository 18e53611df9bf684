package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/minicrushers/minitracker/internal/domain/standing"
)

// StandingRepository keeps the winners collection in memory.
type StandingRepository struct {
	mu      sync.RWMutex
	records map[string]standing.Record
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{records: make(map[string]standing.Record)}
}

func (r *StandingRepository) RecordWin(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	winner := r.records[username]
	winner.Username = username
	winner.Wins++
	winner.WinStreak++
	r.records[username] = winner

	for name, record := range r.records {
		if name == username {
			continue
		}
		record.WinStreak = 0
		r.records[name] = record
	}

	return nil
}

func (r *StandingRepository) List(_ context.Context) ([]standing.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Record, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record)
	}
	// Wins descending; username breaks ties so all backends agree.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}
