package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
)

// DefaultDateLayouts are tried in order. Day-first layouts come before the
// ISO ones so 03/04/2024 reads as 3 April.
var DefaultDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/06",
}

// Excel serials outside this range are not dates (1 = 1900-01-01,
// 2958465 = 9999-12-31).
const (
	minSerial = 1
	maxSerial = 2958465
)

type dateParser struct {
	layouts  []string
	loc      *time.Location
	serials  bool
	date1904 bool
}

// parse returns the instant for raw, or false when raw is blank or does not
// match any layout.
func (p dateParser) parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if p.serials {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			if f < minSerial || f > maxSerial {
				return time.Time{}, false
			}
			t := xlsx.TimeFromExcelTime(f, p.date1904)
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, p.loc), true
		}
	}
	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, raw, p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
