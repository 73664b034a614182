package domain_test

import (
	"math"
	"testing"

	"jadwal/internal/modules/stats/domain"
	timetable "jadwal/internal/modules/timetable/domain"
)

func entry(day timetable.Day, raw string, credits int) domain.Entry {
	return domain.Entry{Day: day, Time: timetable.MustParseTimeRange(raw), Credits: credits}
}

func TestComputeSampleWeek(t *testing.T) {
	t.Parallel()
	summary := domain.Compute([]domain.Entry{
		entry(timetable.Selasa, "07:30-10:00", 3),
		entry(timetable.Selasa, "10:00-11:40", 2),
		entry(timetable.Rabu, "10:00-12:30", 3),
		entry(timetable.Kamis, "07:30-10:00", 3),
		entry(timetable.Kamis, "12:30-15:00", 3),
		entry(timetable.Kamis, "15:00-16:40", 2),
	})
	if summary.TotalCredits != 16 || summary.TotalClasses != 6 {
		t.Fatalf("unexpected totals %+v", summary)
	}
	if summary.BusiestDay != timetable.Kamis {
		t.Fatalf("expected Kamis busiest, got %q", summary.BusiestDay)
	}
	if len(summary.PerDay) != 6 || summary.PerDay[0].Day != timetable.Senin || summary.PerDay[0].Count != 0 {
		t.Fatalf("unexpected per-day %+v", summary.PerDay)
	}
	if summary.PerDay[1].Count != 2 || summary.PerDay[3].Count != 3 {
		t.Fatalf("unexpected per-day counts %+v", summary.PerDay)
	}
	// 150+100+150+150+150+100 minutes over 6 classes.
	want := 800.0 / 60 / 6
	if math.Abs(summary.AverageHours-want) > 1e-9 {
		t.Fatalf("expected %.4f hours, got %.4f", want, summary.AverageHours)
	}
	if summary.TimeOfDay != (domain.TimeOfDay{Morning: 4, Afternoon: 2, Evening: 0}) {
		t.Fatalf("unexpected time of day %+v", summary.TimeOfDay)
	}
}

func TestComputeTiesPickEarliestDay(t *testing.T) {
	t.Parallel()
	summary := domain.Compute([]domain.Entry{
		entry(timetable.Jumat, "17:00-18:00", 2),
		entry(timetable.Senin, "12:00-13:00", 2),
	})
	if summary.BusiestDay != timetable.Senin {
		t.Fatalf("expected Senin on tie, got %q", summary.BusiestDay)
	}
	if summary.TimeOfDay.Afternoon != 1 || summary.TimeOfDay.Evening != 1 {
		t.Fatalf("unexpected time of day %+v", summary.TimeOfDay)
	}
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()
	summary := domain.Compute(nil)
	if summary.BusiestDay != "" || summary.AverageHours != 0 || summary.TotalClasses != 0 {
		t.Fatalf("unexpected empty summary %+v", summary)
	}
	if len(summary.PerDay) != 6 {
		t.Fatalf("expected six weekdays, got %d", len(summary.PerDay))
	}
}
