package domain_test

import (
	"strings"
	"testing"
	"time"

	"jadwal/internal/modules/reminder/domain"
	timetable "jadwal/internal/modules/timetable/domain"
)

// 2025-09-02 is a Tuesday.
var tuesdayNoon = time.Date(2025, 9, 2, 12, 0, 0, 0, time.Local)

func sessionAt(name string, start time.Time, length time.Duration) domain.Session {
	end := start.Add(length)
	return domain.Session{
		CourseName: name,
		Day:        timetable.DayOf(start.Weekday()),
		Time: timetable.TimeRange{
			Start: timetable.ClockTime{Hour: start.Hour(), Minute: start.Minute()},
			End:   timetable.ClockTime{Hour: end.Hour(), Minute: end.Minute()},
		},
		Room: "Ruang D102",
	}
}

func TestPlanArmsOnlyStrictlyFutureFireInstants(t *testing.T) {
	t.Parallel()
	now := tuesdayNoon
	sessions := []domain.Session{
		sessionAt("Jauh", now.Add(20*time.Minute), time.Hour),
		sessionAt("Dekat", now.Add(10*time.Minute), time.Hour),
		sessionAt("Lewat", now.Add(-10*time.Minute), time.Hour),
		sessionAt("Pas", now.Add(15*time.Minute), time.Hour),
	}
	armed, skipped := domain.Plan(sessions, now, 15)
	if len(armed) != 1 || armed[0].CourseName != "Jauh" {
		t.Fatalf("expected only Jauh armed, got %+v", armed)
	}
	if want := now.Add(5 * time.Minute); !armed[0].FireAt.Equal(want) {
		t.Fatalf("expected fire at %s, got %s", want, armed[0].FireAt)
	}
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped, got %d", len(skipped))
	}
	for _, r := range skipped {
		if r.FireAt.After(now) {
			t.Fatalf("skipped reminder %s fires in the future", r.CourseName)
		}
	}
}

func TestPlanIgnoresOtherDays(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{{
		CourseName: "Sistem Cerdas",
		Day:        timetable.Kamis,
		Time:       timetable.MustParseTimeRange("15:00-16:40"),
	}}
	armed, skipped := domain.Plan(sessions, tuesdayNoon, 15)
	if len(armed) != 0 || len(skipped) != 0 {
		t.Fatalf("thursday session should not be planned on tuesday: %v %v", armed, skipped)
	}
}

func TestNextMidnight(t *testing.T) {
	t.Parallel()
	got := domain.NextMidnight(time.Date(2025, 9, 2, 23, 59, 59, 0, time.Local))
	want := time.Date(2025, 9, 3, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	endOfMonth := domain.NextMidnight(time.Date(2025, 9, 30, 8, 0, 0, 0, time.Local))
	if endOfMonth.Month() != time.October || endOfMonth.Day() != 1 {
		t.Fatalf("expected October 1, got %s", endOfMonth)
	}
	exact := domain.NextMidnight(want)
	if !exact.Equal(want.AddDate(0, 0, 1)) {
		t.Fatalf("midnight should roll to the following day, got %s", exact)
	}
}

func TestMessageCopy(t *testing.T) {
	t.Parallel()
	r := domain.Reminder{
		Key:        domain.Key("Metode Penelitian", timetable.MustParseTimeRange("10:00-11:40")),
		CourseName: "Metode Penelitian",
		Time:       timetable.MustParseTimeRange("10:00-11:40"),
		Room:       "Ruang D304",
	}
	n := domain.Message(r, 15)
	if n.Title != "Kelas Metode Penelitian akan dimulai" {
		t.Fatalf("unexpected title %q", n.Title)
	}
	if n.Body != "Kelas akan dimulai dalam 15 menit\nRuang: Ruang D304\nWaktu: 10:00-11:40" {
		t.Fatalf("unexpected body %q", n.Body)
	}
	if n.DedupKey != "class-Metode Penelitian-10:00-11:40" {
		t.Fatalf("unexpected dedup key %q", n.DedupKey)
	}
	if !strings.Contains(domain.TestMessage(20).Body, "pengingat 20 menit") {
		t.Fatalf("test message should mention the lead")
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	m := domain.Manifest{Name: "logfile", Version: "1.0.0", Binary: "/bin/x", SHA256: strings.Repeat("a", 64), Enabled: true}
	if err := m.Validate(); err != nil {
		t.Fatalf("manifest should be valid: %v", err)
	}
	bad := m
	bad.SHA256 = "ABC"
	if err := bad.Validate(); err == nil {
		t.Fatalf("bad checksum should fail")
	}
	noBinary := m
	noBinary.Binary = ""
	if err := noBinary.Validate(); err == nil {
		t.Fatalf("missing binary should fail")
	}
}
