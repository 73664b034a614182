package domain

import (
	timetable "jadwal/internal/modules/timetable/domain"
)

// Entry is the slice of a course that statistics look at.
type Entry struct {
	Day     timetable.Day
	Time    timetable.TimeRange
	Credits int
}

type DayCount struct {
	Day   timetable.Day
	Count int
}

type TimeOfDay struct {
	Morning   int
	Afternoon int
	Evening   int
}

type Summary struct {
	TotalCredits int
	TotalClasses int
	PerDay       []DayCount
	// BusiestDay is empty when there are no classes.
	BusiestDay   timetable.Day
	AverageHours float64
	TimeOfDay    TimeOfDay
}

const (
	noonMinute    = 12 * 60
	eveningMinute = 17 * 60
)

func Compute(entries []Entry) Summary {
	counts := map[timetable.Day]int{}
	var s Summary
	var totalMinutes float64
	for _, e := range entries {
		s.TotalCredits += e.Credits
		s.TotalClasses++
		counts[e.Day]++
		totalMinutes += e.Time.Duration().Minutes()
		switch start := e.Time.Start.Minutes(); {
		case start < noonMinute:
			s.TimeOfDay.Morning++
		case start < eveningMinute:
			s.TimeOfDay.Afternoon++
		default:
			s.TimeOfDay.Evening++
		}
	}

	s.PerDay = make([]DayCount, 0, len(timetable.WeekDays))
	best := 0
	for _, day := range timetable.WeekDays {
		n := counts[day]
		s.PerDay = append(s.PerDay, DayCount{Day: day, Count: n})
		if n > best {
			best = n
			s.BusiestDay = day
		}
	}
	if s.TotalClasses > 0 {
		s.AverageHours = totalMinutes / 60 / float64(s.TotalClasses)
	}
	return s
}
