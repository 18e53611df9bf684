package postgres

import (
	"database/sql/driver"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/minicrushers/minitracker/internal/domain/result"
)

// entriesJSON maps the per-day username->seconds map onto a JSONB column.
type entriesJSON map[string]int

func (e entriesJSON) Value() (driver.Value, error) {
	raw, err := sonic.Marshal(map[string]int(e))
	if err != nil {
		return nil, errors.Wrap(err, "marshal entries")
	}
	return raw, nil
}

func (e *entriesJSON) Scan(src any) error {
	if src == nil {
		*e = entriesJSON{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Newf("unsupported entries column type %T", src)
	}

	return errors.Wrap(sonic.Unmarshal(raw, (*map[string]int)(e)), "unmarshal entries")
}

type resultTableModel struct {
	Date    time.Time   `db:"date"`
	Weekday int         `db:"weekday"`
	Entries entriesJSON `db:"entries"`
}

func (m resultTableModel) toDomain() result.DailyResult {
	return result.DailyResult{
		Date:    result.Normalize(m.Date),
		Weekday: m.Weekday,
		Entries: result.Entries(m.Entries),
	}
}

type standingTableModel struct {
	Username  string `db:"username"`
	Wins      int    `db:"wins"`
	WinStreak int    `db:"win_streak"`
}
