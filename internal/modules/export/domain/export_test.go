package domain_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"jadwal/internal/modules/export/domain"
	timetable "jadwal/internal/modules/timetable/domain"
)

func TestNextOccurrenceSkipsToday(t *testing.T) {
	t.Parallel()
	// 2025-09-04 is a Thursday.
	now := time.Date(2025, 9, 4, 6, 0, 0, 0, time.UTC)
	at := timetable.ClockTime{Hour: 7, Minute: 30}

	if got := domain.NextOccurrence(timetable.Kamis, at, now); !got.Equal(time.Date(2025, 9, 11, 7, 30, 0, 0, time.UTC)) {
		t.Fatalf("same weekday should land next week, got %s", got)
	}
	if got := domain.NextOccurrence(timetable.Jumat, at, now); !got.Equal(time.Date(2025, 9, 5, 7, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected friday %s", got)
	}
	if got := domain.NextOccurrence(timetable.Selasa, at, now); !got.Equal(time.Date(2025, 9, 9, 7, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected tuesday %s", got)
	}
}

func TestCalendarURL(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 9, 4, 6, 0, 0, 0, time.UTC)
	ev := domain.EventFor(domain.Entry{
		Day:      timetable.Rabu,
		Time:     timetable.MustParseTimeRange("10:00-12:30"),
		Name:     "Analisis dan Perancangan Sistem",
		Code:     "SI301",
		Class:    "A",
		Room:     "R-3",
		Lecturer: "Dr. Rina",
	}, now)

	raw := ev.URL()
	if !strings.HasPrefix(raw, domain.CalendarBaseURL+"&text=") {
		t.Fatalf("unexpected prefix %s", raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := parsed.Query()
	if q.Get("action") != "TEMPLATE" || q.Get("text") != "Analisis dan Perancangan Sistem" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("details") != "Kode: SI301\nKelas: A\nDosen: Dr. Rina\nRuang: R-3" {
		t.Fatalf("unexpected details %q", q.Get("details"))
	}
	if q.Get("location") != "R-3" || q.Get("recur") != "RRULE:FREQ=WEEKLY;COUNT=16" {
		t.Fatalf("unexpected location/recur %v", q)
	}
	if q.Get("dates") != "20250910T100000Z/20250910T123000Z" {
		t.Fatalf("unexpected dates %q", q.Get("dates"))
	}
}

func TestNewDocumentRows(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument("Semester Gasal-1 2025/2026", []domain.Entry{{
		Day: timetable.Selasa, Time: timetable.MustParseTimeRange("07:30-10:00"),
		Name: "Basis Data", Code: "SI201", Room: "R-1", Lecturer: "Budi",
	}})
	if doc.Title != "Jadwal Kuliah" || len(doc.Header) != 6 || len(doc.Rows) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	want := []string{"Selasa", "07:30-10:00", "Basis Data", "SI201", "R-1", "Budi"}
	for i, cell := range doc.Rows[0] {
		if cell != want[i] {
			t.Fatalf("cell %d: want %q got %q", i, want[i], cell)
		}
	}
}
