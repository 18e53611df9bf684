package puzzleday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveBoundary(t *testing.T) {
	t.Parallel()

	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name         string
		now          time.Time
		wantCurrent  time.Time
		wantPrevious time.Time
	}{
		{
			// Saturday 17:00 ET, before the 18:00 weekend cutover.
			name:         "saturday before weekend cutover",
			now:          time.Date(2024, time.June, 8, 17, 0, 0, 0, eastern),
			wantCurrent:  date(2024, time.June, 8),
			wantPrevious: date(2024, time.June, 7),
		},
		{
			// Saturday 19:00 ET, past the weekend cutover: Saturday's
			// puzzle is complete, Sunday's is collecting.
			name:         "saturday after weekend cutover",
			now:          time.Date(2024, time.June, 8, 19, 0, 0, 0, eastern),
			wantCurrent:  date(2024, time.June, 9),
			wantPrevious: date(2024, time.June, 8),
		},
		{
			// Wednesday 21:59 ET, still before the 22:00 weekday cutover.
			name:         "weekday before cutover",
			now:          time.Date(2024, time.June, 5, 21, 59, 0, 0, eastern),
			wantCurrent:  date(2024, time.June, 5),
			wantPrevious: date(2024, time.June, 4),
		},
		{
			name:         "weekday after cutover",
			now:          time.Date(2024, time.June, 5, 22, 0, 0, 0, eastern),
			wantCurrent:  date(2024, time.June, 6),
			wantPrevious: date(2024, time.June, 5),
		},
		{
			// Sunday 00:30 ET: Saturday's cutover fired yesterday but must
			// not carry across local midnight. Sunday's own 18:00 cutover
			// has not been reached.
			name:         "cutover does not leak past local midnight",
			now:          time.Date(2024, time.June, 9, 0, 30, 0, 0, eastern),
			wantCurrent:  date(2024, time.June, 9),
			wantPrevious: date(2024, time.June, 8),
		},
		{
			// 23:30 UTC on a weekday is 19:30 ET, before the weekday
			// cutover; the UTC calendar date must not influence anything.
			name:         "utc instant converted into reference zone",
			now:          time.Date(2024, time.June, 5, 23, 30, 0, 0, time.UTC),
			wantCurrent:  date(2024, time.June, 5),
			wantPrevious: date(2024, time.June, 4),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.wantCurrent, ResolveBoundary(tc.now, eastern, Current), "current")
			require.Equal(t, tc.wantPrevious, ResolveBoundary(tc.now, eastern, Previous), "previous")
		})
	}
}

func TestResolveBoundaryIsPure(t *testing.T) {
	t.Parallel()

	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 8, 19, 0, 0, 0, eastern)
	first := ResolveBoundary(now, eastern, Previous)
	second := ResolveBoundary(now, eastern, Previous)
	require.Equal(t, first, second)
}
