package charts

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/minicrushers/minitracker/internal/domain/report"
)

const (
	barChartWidth  = 1024
	barChartHeight = 512

	pieTileWidth  = 320
	pieTileHeight = 320
	pieGridCols   = 4
	pieGridRows   = 2
)

// Renderer draws the wins summary images posted after each final report.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// WinsBar renders the total-wins bar chart, one bar per player.
func (r *Renderer) WinsBar(usernames []string, wins []int) ([]byte, error) {
	if len(usernames) == 0 || len(usernames) != len(wins) {
		return nil, errors.Newf("wins bar needs matched labels and values, got %d labels and %d values", len(usernames), len(wins))
	}

	bars := make([]chart.Value, 0, len(usernames))
	for i, username := range usernames {
		bars = append(bars, chart.Value{
			Label: username,
			Value: float64(wins[i]),
		})
	}

	graph := chart.BarChart{
		Title:    "Mini Crushers Total Wins",
		Width:    barChartWidth,
		Height:   barChartHeight,
		BarWidth: 60,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render wins bar chart")
	}
	return buf.Bytes(), nil
}

// WeekdayWinnerPies renders one pie per weekday showing who won that weekday
// how often, stitched into a single 4x2 grid image. Weekdays without a
// completed puzzle come out as empty tiles.
func (r *Renderer) WeekdayWinnerPies(winsByWeekday map[int]map[string]int) ([]byte, error) {
	grid := image.NewRGBA(image.Rect(0, 0, pieGridCols*pieTileWidth, pieGridRows*pieTileHeight))
	draw.Draw(grid, grid.Bounds(), image.White, image.Point{}, draw.Src)

	for weekday := 0; weekday < 7; weekday++ {
		winners := winsByWeekday[weekday]
		if len(winners) == 0 {
			continue
		}

		tile, err := renderPieTile(report.WeekdayName(weekday), winners)
		if err != nil {
			return nil, err
		}

		col := weekday % pieGridCols
		row := weekday / pieGridCols
		offset := image.Pt(col*pieTileWidth, row*pieTileHeight)
		draw.Draw(grid, tile.Bounds().Add(offset), tile, image.Point{}, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, grid); err != nil {
		return nil, errors.Wrap(err, "encode weekday pies image")
	}
	return buf.Bytes(), nil
}

func renderPieTile(title string, winners map[string]int) (image.Image, error) {
	values := make([]chart.Value, 0, len(winners))
	for username, count := range winners {
		values = append(values, chart.Value{
			Label: username + " (" + strconv.Itoa(count) + ")",
			Value: float64(count),
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  pieTileWidth,
		Height: pieTileHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrapf(err, "render %s pie", title)
	}

	tile, err := png.Decode(&buf)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s pie", title)
	}
	return tile, nil
}
