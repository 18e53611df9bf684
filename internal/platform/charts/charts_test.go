package charts

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinsBarProducesPNG(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	data, err := renderer.WinsBar([]string{"alice", "bob"}, []int{5, 3})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, barChartWidth, img.Bounds().Dx())
	assert.Equal(t, barChartHeight, img.Bounds().Dy())
}

func TestWinsBarRejectsMismatchedInput(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	_, err := renderer.WinsBar([]string{"alice"}, []int{1, 2})
	require.Error(t, err)

	_, err = renderer.WinsBar(nil, nil)
	require.Error(t, err)
}

func TestWeekdayWinnerPiesGridDimensions(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	data, err := renderer.WeekdayWinnerPies(map[int]map[string]int{
		0: {"alice": 3, "bob": 1},
		4: {"carol": 2},
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, pieGridCols*pieTileWidth, img.Bounds().Dx())
	assert.Equal(t, pieGridRows*pieTileHeight, img.Bounds().Dy())
}

func TestWeekdayWinnerPiesEmptyHistory(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	data, err := renderer.WeekdayWinnerPies(nil)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}
