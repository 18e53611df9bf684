package memory

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrushers/minitracker/internal/domain/result"
)

var monday = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func TestUpsertInsertReportsAllEntriesAsNew(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository()
	day := result.New(monday, result.Entries{"alice": 90, "bob": 75})

	stored, changes, err := repo.Upsert(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, result.ChangeSet{"alice": 90, "bob": 75}, changes)
	assert.Equal(t, day.Entries, stored.Entries)
}

func TestUpsertReplacesEntriesWholesale(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository()
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, result.New(monday, result.Entries{"alice": 90, "bob": 75}))
	require.NoError(t, err)

	// alice improves, bob disappears, carol appears: only carol is new.
	stored, changes, err := repo.Upsert(ctx, result.New(monday, result.Entries{"alice": 80, "carol": 110}))
	require.NoError(t, err)
	assert.Equal(t, result.ChangeSet{"carol": 110}, changes)
	assert.Equal(t, result.Entries{"alice": 80, "carol": 110}, stored.Entries)
}

func TestUpsertRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository()
	ctx := context.Background()

	// Same rules as the mongo and postgres backends: a non-midnight date or
	// a weekday that disagrees with the date is rejected before storage.
	_, _, err := repo.Upsert(ctx, result.DailyResult{
		Date:    monday.Add(9 * time.Hour),
		Weekday: 0,
		Entries: result.Entries{"alice": 90},
	})
	require.Error(t, err)

	_, _, err = repo.Upsert(ctx, result.DailyResult{
		Date:    monday,
		Weekday: 3,
		Entries: result.Entries{"alice": 90},
	})
	require.Error(t, err)

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetByDateNormalizesInstant(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository()
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, result.New(monday, result.Entries{"alice": 90}))
	require.NoError(t, err)

	day, found, err := repo.GetByDate(ctx, monday.Add(13*time.Hour))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, monday, day.Date)
}

func TestListHistoryOrdersByDate(t *testing.T) {
	t.Parallel()

	repo := NewResultRepository()
	ctx := context.Background()

	for _, offset := range []int{2, 0, 1} {
		_, _, err := repo.Upsert(ctx, result.New(monday.AddDate(0, 0, offset), result.Entries{"alice": 90}))
		require.NoError(t, err)
	}

	history, err := repo.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].Date.Before(history[1].Date))
	assert.True(t, history[1].Date.Before(history[2].Date))
}

func TestUpsertProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genEntries := gen.MapOf(gen.Identifier(), gen.IntRange(0, 7200))

	properties.Property("upsert is idempotent", prop.ForAll(
		func(entries map[string]int) bool {
			repo := NewResultRepository()
			ctx := context.Background()
			day := result.New(monday, result.Entries(entries))

			_, first, err := repo.Upsert(ctx, day)
			if err != nil || len(first) != len(entries) {
				return false
			}
			_, second, err := repo.Upsert(ctx, day)
			return err == nil && len(second) == 0
		},
		genEntries,
	))

	properties.Property("change set is strictly additive", prop.ForAll(
		func(before map[string]int, after map[string]int) bool {
			repo := NewResultRepository()
			ctx := context.Background()

			if _, _, err := repo.Upsert(ctx, result.New(monday, result.Entries(before))); err != nil {
				return false
			}
			_, changes, err := repo.Upsert(ctx, result.New(monday, result.Entries(after)))
			if err != nil {
				return false
			}
			for name := range changes {
				if _, existed := before[name]; existed {
					return false
				}
				if _, present := after[name]; !present {
					return false
				}
			}
			return true
		},
		genEntries,
		genEntries,
	))

	properties.TestingRun(t)
}
