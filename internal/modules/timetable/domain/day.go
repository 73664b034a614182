package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "jadwal/internal/platform/errors"
)

// Day is a weekday name as written in the schedule.
type Day string

const (
	Minggu Day = "Minggu"
	Senin  Day = "Senin"
	Selasa Day = "Selasa"
	Rabu   Day = "Rabu"
	Kamis  Day = "Kamis"
	Jumat  Day = "Jumat"
	Sabtu  Day = "Sabtu"
)

// days is indexed by time.Weekday (Sunday = 0).
var days = [7]Day{Minggu, Senin, Selasa, Rabu, Kamis, Jumat, Sabtu}

// WeekDays is the Monday..Saturday display order.
var WeekDays = []Day{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu}

var english = map[string]Day{
	"sunday":    Minggu,
	"monday":    Senin,
	"tuesday":   Selasa,
	"wednesday": Rabu,
	"thursday":  Kamis,
	"friday":    Jumat,
	"saturday":  Sabtu,
}

func DayOf(weekday time.Weekday) Day {
	return days[int(weekday)%7]
}

func ParseDay(raw string) (Day, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, d := range days {
		if strings.ToLower(string(d)) == name {
			return d, nil
		}
	}
	if d, ok := english[name]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown day %q", apperrors.ErrInvalidInput, raw)
}

func (d Day) Weekday() time.Weekday {
	for i, candidate := range days {
		if candidate == d {
			return time.Weekday(i)
		}
	}
	return time.Weekday(-1)
}

func (d Day) Validate() error {
	if d.Weekday() < 0 {
		return fmt.Errorf("%w: unknown day %q", apperrors.ErrInvalidInput, string(d))
	}
	return nil
}

func (d Day) String() string { return string(d) }
