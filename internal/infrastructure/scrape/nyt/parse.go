package nyt

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/minicrushers/minitracker/internal/usecase"
)

const (
	scoreRowSelector   = "div.lbd-score"
	scoreNameSelector  = "p.lbd-score__name"
	scoreTimeSelector  = "p.lbd-score__time"
	dateHeaderSelector = "h3.lbd-type__date"
)

// parseLeaderboard lifts the per-solver rows and the date header out of the
// leaderboard page without interpreting them.
func parseLeaderboard(body []byte) (usecase.RawCapture, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return usecase.RawCapture{}, errors.Wrapf(usecase.ErrParse, "leaderboard html: %v", err)
	}

	header := strings.TrimSpace(doc.Find(dateHeaderSelector).First().Text())
	if header == "" {
		return usecase.RawCapture{}, errors.Wrap(usecase.ErrParse, "leaderboard date header not found")
	}

	// Header reads like "Friday, June 7, 2024".
	fields := strings.Fields(header)
	if len(fields) != 4 {
		return usecase.RawCapture{}, errors.Wrapf(usecase.ErrParse, "unexpected date header %q", header)
	}

	capture := usecase.RawCapture{
		Month: fields[1],
		Day:   fields[2],
		Year:  fields[3],
	}

	doc.Find(scoreRowSelector).Each(func(_ int, row *goquery.Selection) {
		capture.Entries = append(capture.Entries, usecase.RawEntry{
			DisplayName: strings.TrimSpace(row.Find(scoreNameSelector).Text()),
			RawTime:     strings.TrimSpace(row.Find(scoreTimeSelector).Text()),
		})
	})

	return capture, nil
}
