package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrushers/minitracker/internal/domain/result"
)

func TestNormalizeCapture(t *testing.T) {
	t.Parallel()

	capture := RawCapture{
		Year:  "2024",
		Month: "June",
		Day:   "3,",
		Entries: []RawEntry{
			{DisplayName: "alice", RawTime: "01:30"},
			{DisplayName: "bob (you)", RawTime: "01:15"},
			{DisplayName: "carol", RawTime: "--"},
		},
	}

	day, err := NormalizeCapture(capture)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), day.Date)
	assert.Equal(t, 0, day.Weekday) // Monday
	assert.Equal(t, result.Entries{"alice": 90, "bob": 75}, day.Entries)
}

func TestNormalizeCaptureSkipsUnparseableTimes(t *testing.T) {
	t.Parallel()

	capture := RawCapture{
		Year:  "2024",
		Month: "June",
		Day:   "3",
		Entries: []RawEntry{
			{DisplayName: "alice", RawTime: "1:3x"},
			{DisplayName: "bob", RawTime: ""},
			{DisplayName: "carol", RawTime: "02:99"},
			{DisplayName: "dave", RawTime: "00:45"},
		},
	}

	day, err := NormalizeCapture(capture)
	require.NoError(t, err)
	assert.Equal(t, result.Entries{"dave": 45}, day.Entries)
}

func TestNormalizeCaptureDuplicateNameKeepsLaterRow(t *testing.T) {
	t.Parallel()

	capture := RawCapture{
		Year:  "2024",
		Month: "June",
		Day:   "3",
		Entries: []RawEntry{
			{DisplayName: "alice", RawTime: "01:30"},
			{DisplayName: "alice", RawTime: "01:10"},
		},
	}

	day, err := NormalizeCapture(capture)
	require.NoError(t, err)
	assert.Equal(t, result.Entries{"alice": 70}, day.Entries)
}

func TestNormalizeCaptureBadDateHeader(t *testing.T) {
	t.Parallel()

	_, err := NormalizeCapture(RawCapture{Year: "2024", Month: "Juneuary", Day: "3"})
	require.ErrorIs(t, err, ErrParse)

	_, err = NormalizeCapture(RawCapture{Year: "twenty", Month: "June", Day: "3"})
	require.ErrorIs(t, err, ErrParse)

	_, err = NormalizeCapture(RawCapture{Year: "2024", Month: "June", Day: "99"})
	require.ErrorIs(t, err, ErrParse)
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"01:30", 90, true},
		{"0:05", 5, true},
		{"61:01", 3661, true},
		{"--", 0, false},
		{"", 0, false},
		{"130", 0, false},
		{"-1:30", 0, false},
		{"01:60", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseClock(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		}
	}
}
