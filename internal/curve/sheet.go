package curve

import (
	"context"
	"time"

	"github.com/pbnjay/grate"
)

var SourceSheet = "Sheet"

// SheetCollector reads a curve from the first two columns of every sheet in a
// spreadsheet. The readers for the file formats must be registered by
// importing the grate sub-packages (xls, xlsx, simple).
type SheetCollector struct {
	Path string
}

func NewSheetCollector(path string) *SheetCollector {
	return &SheetCollector{Path: path}
}

func (c *SheetCollector) Collect(ctx context.Context, date time.Time) (*Curve, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wb, err := grate.Open(c.Path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	collected := NewCurve(SourceSheet, date)

	sheets, err := wb.List()
	if err != nil {
		return nil, err
	}
	for _, sheetName := range sheets {
		sheet, err := wb.Get(sheetName)
		if err != nil {
			return nil, err
		}

		for sheet.Next() {
			row := sheet.Strings()
			if len(row) < 2 {
				continue
			}

			tenor, rate, err := parsePoint(row[0], row[1])
			if err != nil {
				continue
			}

			if err := collected.AddPoint(tenor, rate); err != nil {
				return nil, err
			}
		}
	}

	if collected.Len() == 0 {
		return nil, ErrDataUnavailable
	}

	return collected, nil
}

func (c *SheetCollector) Source() string {
	return SourceSheet
}
