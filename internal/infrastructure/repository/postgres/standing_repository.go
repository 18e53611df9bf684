package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/minicrushers/minitracker/internal/domain/standing"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

const (
	recordWinQuery = `INSERT INTO winners (username, wins, win_streak)
VALUES ($1, 1, 1)
ON CONFLICT (username) DO UPDATE SET
    wins = winners.wins + 1,
    win_streak = winners.win_streak + 1`

	resetStreaksQuery = `UPDATE winners SET win_streak = 0 WHERE username <> $1`

	listStandingsQuery = `SELECT username, wins, win_streak FROM winners ORDER BY wins DESC, username ASC`
)

// StandingRepository keeps one row per player in the winners table.
type StandingRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

// RecordWin applies the winner bump and the streak reset in one transaction
// so a partial failure never leaves two players on a live streak.
func (r *StandingRepository) RecordWin(ctx context.Context, username string) error {
	if username == "" {
		return errors.Wrap(usecase.ErrInvalidInput, "empty winner username")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "begin tx record win: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, recordWinQuery, username); err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "record win username=%s table=winners: %v", username, err)
	}
	if _, err := tx.ExecContext(ctx, resetStreaksQuery, username); err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "reset streaks table=winners: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "commit record win tx: %v", err)
	}
	return nil
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Record, error) {
	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, listStandingsQuery); err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "list table=winners: %v", err)
	}

	records := make([]standing.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, standing.Record{
			Username:  row.Username,
			Wins:      row.Wins,
			WinStreak: row.WinStreak,
		})
	}
	return records, nil
}
