package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

const (
	selectResultQuery = `SELECT date, weekday, entries FROM times WHERE date = $1`

	upsertResultQuery = `INSERT INTO times (date, weekday, entries)
VALUES ($1, $2, $3)
ON CONFLICT (date) DO UPDATE SET
    weekday = EXCLUDED.weekday,
    entries = EXCLUDED.entries`

	listResultsQuery = `SELECT date, weekday, entries FROM times ORDER BY date ASC`
)

// ResultRepository persists one row per puzzle day in the times table.
type ResultRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func (r *ResultRepository) GetByDate(ctx context.Context, date time.Time) (result.DailyResult, bool, error) {
	key := result.Normalize(date)

	var row resultTableModel
	err := r.db.GetContext(ctx, &row, selectResultQuery, key)
	if errors.Is(err, sql.ErrNoRows) {
		return result.DailyResult{}, false, nil
	}
	if err != nil {
		return result.DailyResult{}, false, errors.Wrapf(usecase.ErrStoreOperation, "select date=%s table=times: %v", key.Format(result.DateLayout), err)
	}
	return row.toDomain(), true, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, day result.DailyResult) (result.DailyResult, result.ChangeSet, error) {
	if err := day.Validate(); err != nil {
		return result.DailyResult{}, nil, err
	}

	existing, found, err := r.GetByDate(ctx, day.Date)
	if err != nil {
		return result.DailyResult{}, nil, err
	}
	if found && existing.Entries.Equal(day.Entries) {
		return existing, result.ChangeSet{}, nil
	}

	if _, err := r.db.ExecContext(ctx, upsertResultQuery, day.Date, day.Weekday, entriesJSON(day.Entries)); err != nil {
		return result.DailyResult{}, nil, errors.Wrapf(usecase.ErrStoreOperation, "upsert date=%s table=times: %v", day.Date.Format(result.DateLayout), err)
	}

	if !found {
		return day, result.Diff(nil, day.Entries), nil
	}
	return day, result.Diff(existing.Entries, day.Entries), nil
}

func (r *ResultRepository) ListHistory(ctx context.Context) ([]result.DailyResult, error) {
	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, listResultsQuery); err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "list table=times: %v", err)
	}

	history := make([]result.DailyResult, 0, len(rows))
	for _, row := range rows {
		history = append(history, row.toDomain())
	}
	return history, nil
}
