// Package dateformat turns free-form spreadsheet dates into canonical YYYY-MM-DD strings.
package dateformat

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Canonical is the layout every normalized date is returned in.
const Canonical = "2006-01-02"

// ErrInvalidFormat is returned when no supported layout matches the input.
var ErrInvalidFormat = errors.New("dateformat: invalid date format")

var (
	canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	compactRe   = regexp.MustCompile(`^\d{8}$`)
)

// layouts is ordered from the most specific and most common to the least. Month-first layouts
// precede their day-first twins, so an ambiguous input such as 03/04/2023 is read as March 4.
var layouts = []string{
	// ISO with time
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",

	// month-first
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1-2-06",
	"01.02.2006",
	"1.2.2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",

	// year-first
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"2006.1.2",
	"20060102",

	// day-first
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
	"02-01-2006",
	"2-1-2006",
	"02-01-06",
	"02.01.2006",
	"2.1.2006",

	// named months
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan 02, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"Jan-02-2006",
	"2006-Jan-02",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006",

	// RFC / C layouts
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

// Normalize returns input as a canonical YYYY-MM-DD date.
// Only whole-string matches count; calendar-invalid dates such as 02/30/2023 are rejected.
func Normalize(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidFormat
	}

	if canonicalRe.MatchString(s) {
		if _, err := time.Parse(Canonical, s); err == nil {
			return s, nil
		}
		return "", ErrInvalidFormat
	}
	if compactRe.MatchString(s) {
		if t, err := time.Parse("01022006", s); err == nil {
			return t.Format(Canonical), nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Canonical), nil
		}
	}
	return "", ErrInvalidFormat
}

// Parse normalizes input and returns it as a UTC midnight time.Time.
func Parse(input string) (time.Time, error) {
	s, err := Normalize(input)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(Canonical, s)
}
