package result

import (
	"context"
	"time"
)

type Repository interface {
	// GetByDate loads the record for one puzzle day. The bool reports
	// whether a record exists.
	GetByDate(ctx context.Context, date time.Time) (DailyResult, bool, error)

	// Upsert inserts the day if absent, or replaces the stored entries
	// wholesale when they differ structurally. It returns the stored record
	// and the additive ChangeSet (all entries on insert, newly appearing
	// names on update, empty when nothing changed). Calling it again with
	// the same record yields an empty ChangeSet.
	Upsert(ctx context.Context, day DailyResult) (DailyResult, ChangeSet, error)

	// ListHistory returns every stored day ordered by date ascending.
	ListHistory(ctx context.Context) ([]DailyResult, error)
}
