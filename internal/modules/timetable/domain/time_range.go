package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "jadwal/internal/platform/errors"
)

var timeRangePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})\s*$`)

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// On returns the instant at this clock time on the calendar day of ref, in
// ref's location.
func (c ClockTime) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, ref.Location())
}

type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// ParseTimeRange parses "H:MM-HH:MM". Both ends are read independently, so
// an end earlier than the start is returned as-is.
func ParseTimeRange(raw string) (TimeRange, error) {
	m := timeRangePattern.FindStringSubmatch(raw)
	if m == nil {
		return TimeRange{}, fmt.Errorf("%w: %q", apperrors.ErrMalformedTimeFormat, raw)
	}
	start, err := clockTime(m[1], m[2])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", apperrors.ErrMalformedTimeFormat, raw)
	}
	end, err := clockTime(m[3], m[4])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", apperrors.ErrMalformedTimeFormat, raw)
	}
	return TimeRange{Start: start, End: end}, nil
}

func MustParseTimeRange(raw string) TimeRange {
	r, err := ParseTimeRange(raw)
	if err != nil {
		panic(err)
	}
	return r
}

func clockTime(hh, mm string) (ClockTime, error) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return ClockTime{}, fmt.Errorf("out of range")
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

func (r TimeRange) String() string { return r.Start.String() + "-" + r.End.String() }

func (r TimeRange) Duration() time.Duration {
	return time.Duration(r.End.Minutes()-r.Start.Minutes()) * time.Minute
}

// Validate rejects empty or inverted ranges, including ones that wrap past
// midnight.
func (r TimeRange) Validate() error {
	if r.Start.Minutes() >= r.End.Minutes() {
		return fmt.Errorf("%w: time range %s must start before it ends", apperrors.ErrInvalidInput, r.String())
	}
	return nil
}
