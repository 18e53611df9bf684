package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWinCreatesAndIncrements(t *testing.T) {
	t.Parallel()

	repo := NewStandingRepository()
	ctx := context.Background()

	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "alice"))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Wins)
	assert.Equal(t, 2, records[0].WinStreak)
}

func TestRecordWinResetsOtherStreaks(t *testing.T) {
	t.Parallel()

	repo := NewStandingRepository()
	ctx := context.Background()

	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "bob"))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := map[string]int{}
	for _, record := range records {
		byName[record.Username] = record.WinStreak
	}
	assert.Equal(t, 0, byName["alice"])
	assert.Equal(t, 1, byName["bob"])

	// alice's cumulative wins are untouched by bob's win.
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, 2, records[0].Wins)
}

func TestListSortsByWinsDescending(t *testing.T) {
	t.Parallel()

	repo := NewStandingRepository()
	ctx := context.Background()

	require.NoError(t, repo.RecordWin(ctx, "bob"))
	require.NoError(t, repo.RecordWin(ctx, "alice"))
	require.NoError(t, repo.RecordWin(ctx, "alice"))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "bob", records[1].Username)
}
