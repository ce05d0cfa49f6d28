package filedate

import (
	"regexp"
	"strconv"
)

const (
	minValidYear  = 1970
	maxValidYear  = 3000
	minValidMonth = 1
	maxValidMonth = 12
	minValidDay   = 1
	maxValidDay   = 31
)

// Date is a calendar date extracted from a filename.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Valid reports whether the components fall inside the accepted calendar
// ranges. The day check is range-only; month lengths are not enforced.
func (d Date) Valid() bool {
	return d.Year >= minValidYear && d.Year <= maxValidYear &&
		d.Month >= minValidMonth && d.Month <= maxValidMonth &&
		d.Day >= minValidDay && d.Day <= maxValidDay
}

// pattern couples a named regular expression with an extraction rule. A rule
// may decline a match (for example on a parse failure) without aborting the
// overall scan.
type pattern struct {
	name    string
	re      *regexp.Regexp
	extract func(groups []string) (Date, bool)
}

// ymd interprets capture groups 1..3 as year, month and day.
func ymd(groups []string) (Date, bool) {
	if len(groups) < 4 {
		return Date{}, false
	}
	year, err := strconv.Atoi(groups[1])
	if err != nil {
		return Date{}, false
	}
	month, err := strconv.Atoi(groups[2])
	if err != nil {
		return Date{}, false
	}
	day, err := strconv.Atoi(groups[3])
	if err != nil {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// patterns is evaluated in order; the first match with a valid calendar date
// wins. Device-specific token patterns come before the generic numeric ones
// so that resolution or ID digits are not misread as dates.
var patterns = []pattern{
	{name: "PXL_YYYYMMDD_HHMMSS", re: regexp.MustCompile(`PXL_(\d{4})(\d{2})(\d{2})_\d{6}`), extract: ymd},
	{name: "Screenshot_YYYYMMDD-HHMMSS", re: regexp.MustCompile(`Screenshot_(\d{4})(\d{2})(\d{2})-\d{6}`), extract: ymd},
	{name: "IMG_YYYYMMDD_HHMMSS", re: regexp.MustCompile(`IMG_(\d{4})(\d{2})(\d{2})_\d{6}`), extract: ymd},
	{name: "IMG-YYYYMMDD-WA", re: regexp.MustCompile(`IMG-(\d{4})(\d{2})(\d{2})-WA`), extract: ymd},
	{name: "VID_YYYYMMDD_HHMMSS", re: regexp.MustCompile(`VID_(\d{4})(\d{2})(\d{2})_\d{6}`), extract: ymd},
	{name: "DSC_YYYYMMDD", re: regexp.MustCompile(`DSC_(\d{4})(\d{2})(\d{2})`), extract: ymd},
	{name: "YYYY-MM-DD", re: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), extract: ymd},
	{name: "YYYYMMDD_delimited", re: regexp.MustCompile(`(?:^|[_\-\s])(\d{4})(\d{2})(\d{2})(?:[_\-\s]|$)`), extract: ymd},
	{name: "YYYYMMDD_start", re: regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})[_\-]`), extract: ymd},
}

// ExtractDate scans the filename against the pattern list and returns the
// first calendar-valid date. A miss across all patterns is not an error.
func ExtractDate(filename string) (Date, bool) {
	for _, p := range patterns {
		groups := p.re.FindStringSubmatch(filename)
		if groups == nil {
			continue
		}
		date, ok := p.extract(groups)
		if !ok || !date.Valid() {
			continue
		}
		return date, true
	}
	return Date{}, false
}
