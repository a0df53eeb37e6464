// Package birthdate parses the loosely formatted dates users type into the
// diagnosis form: 1990-01-01, 1990/1/1, 1990年1月1日, full-width digits.
package birthdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sukuyo/internal/errors"

	"golang.org/x/text/width"
)

// DefaultHour is used when no birth time is given.
const DefaultHour = 12

// Birthdate is a validated calendar date with a wall-clock time
type Birthdate struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

var separators = strings.NewReplacer(
	"/", "-",
	".", "-",
	"−", "-",
	"年", "-",
	"月", "-",
	"日", "",
)

// Parse reads a date string. The time of day defaults to noon.
func Parse(s string) (Birthdate, error) {
	return ParseWithTime(s, "")
}

// ParseWithTime reads a date plus an optional "HH:MM" time.
func ParseWithTime(date, clock string) (Birthdate, error) {
	normalized := separators.Replace(strings.TrimSpace(width.Narrow.String(date)))
	parts := strings.Split(normalized, "-")
	if len(parts) != 3 {
		return Birthdate{}, invalid(date, "expected year, month and day")
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Birthdate{}, invalid(date, "non-numeric component "+strconv.Quote(p))
		}
		nums[i] = n
	}

	b := Birthdate{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2], Hour: DefaultHour}
	if b.Year < 1 || b.Year > 9999 {
		return Birthdate{}, invalid(date, "year out of range")
	}
	// time.Date normalizes 2023-02-30 into March; a round trip catches it
	check := time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
	if check.Year() != b.Year || check.Month() != b.Month || check.Day() != b.Day {
		return Birthdate{}, invalid(date, "no such calendar day")
	}

	if c := strings.TrimSpace(width.Narrow.String(clock)); c != "" {
		t, err := time.Parse("15:04", c)
		if err != nil {
			return Birthdate{}, errors.InvalidInput(fmt.Sprintf("invalid birth time %q: expected HH:MM", clock))
		}
		b.Hour, b.Minute = t.Hour(), t.Minute()
	}
	return b, nil
}

// At returns the birth instant in loc
func (b Birthdate) At(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(b.Year, b.Month, b.Day, b.Hour, b.Minute, 0, 0, loc)
}

// String formats the date as YYYY-MM-DD
func (b Birthdate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, int(b.Month), b.Day)
}

func invalid(input, reason string) error {
	return errors.InvalidInput(fmt.Sprintf("invalid birthdate %q: %s", input, reason))
}
