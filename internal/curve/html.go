package curve

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

var SourceHTML = "HTML"

// HTMLCollector scrapes a curve from an HTML table whose rows hold a tenor
// in the first cell and a percentage rate in the second.
type HTMLCollector struct {
	URL      string
	Selector string
}

func NewHTMLCollector(url, selector string) *HTMLCollector {
	if selector == "" {
		selector = "table tr"
	}

	return &HTMLCollector{
		URL:      url,
		Selector: selector,
	}
}

func (c *HTMLCollector) Collect(ctx context.Context, date time.Time) (*Curve, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x := colly.NewCollector()

	collected := NewCurve(SourceHTML, date)

	var rowErr error

	x.OnHTML(c.Selector, func(e *colly.HTMLElement) {
		cells := e.ChildTexts("td")
		if len(cells) < 2 {
			return
		}

		tenor, rate, err := parsePoint(cells[0], cells[1])
		if err != nil {
			return
		}

		if err := collected.AddPoint(tenor, rate); err != nil && rowErr == nil {
			rowErr = err
		}
	})

	fmt.Printf("Fetching %s\n", c.URL)

	if err := x.Visit(c.URL); err != nil {
		return nil, fmt.Errorf("failed to fetch curve from %s: %w", c.URL, err)
	}

	if rowErr != nil {
		return nil, rowErr
	}

	if collected.Len() == 0 {
		return nil, ErrDataUnavailable
	}

	return collected, nil
}

func (c *HTMLCollector) Source() string {
	return SourceHTML
}
