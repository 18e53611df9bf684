package standing

import "context"

type Repository interface {
	// RecordWin credits one day's win: the winner's Wins and WinStreak are
	// both incremented (creating the record if absent) and every other
	// known participant's WinStreak is reset to 0. The three effects
	// complete before RecordWin returns, so a subsequent List never sees a
	// half-applied day.
	RecordWin(ctx context.Context, username string) error

	// List returns all records sorted by Wins descending. Callers must not
	// rely on the order of equal win counts.
	List(ctx context.Context) ([]Record, error)
}
