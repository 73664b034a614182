package domain_test

import (
	"errors"
	"testing"
	"time"

	"jadwal/internal/modules/timetable/domain"
	apperrors "jadwal/internal/platform/errors"
)

func TestParseDayAcceptsIndonesianAndEnglish(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Day{
		"Selasa":    domain.Selasa,
		" kamis ":   domain.Kamis,
		"JUMAT":     domain.Jumat,
		"tuesday":   domain.Selasa,
		"Sunday":    domain.Minggu,
		"wednesday": domain.Rabu,
	}
	for raw, want := range cases {
		got, err := domain.ParseDay(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := domain.ParseDay("Funday"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDayWeekdayRoundTrip(t *testing.T) {
	t.Parallel()
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if got := domain.DayOf(wd).Weekday(); got != wd {
			t.Fatalf("weekday %s mapped back to %s", wd, got)
		}
	}
	if domain.DayOf(time.Tuesday) != domain.Selasa {
		t.Fatalf("tuesday should be Selasa")
	}
	if err := domain.Day("Caturday").Validate(); err == nil {
		t.Fatalf("unknown day should fail validation")
	}
}

func TestParseTimeRange(t *testing.T) {
	t.Parallel()
	r, err := domain.ParseTimeRange("7:30 - 09:10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Start.Minutes() != 450 || r.End.Minutes() != 550 {
		t.Fatalf("unexpected minutes: %d-%d", r.Start.Minutes(), r.End.Minutes())
	}
	if r.String() != "07:30-09:10" {
		t.Fatalf("unexpected render %q", r.String())
	}
	if r.Duration() != 100*time.Minute {
		t.Fatalf("unexpected duration %s", r.Duration())
	}

	for _, raw := range []string{"", "07.30-09.10", "7:3-9:10", "24:00-25:00", "07:60-08:00", "07:30"} {
		if _, err := domain.ParseTimeRange(raw); !errors.Is(err, apperrors.ErrMalformedTimeFormat) {
			t.Fatalf("%q: expected malformed time format, got %v", raw, err)
		}
	}
}

func TestTimeRangeValidateRejectsInvertedRanges(t *testing.T) {
	t.Parallel()
	if err := domain.MustParseTimeRange("10:00-11:40").Validate(); err != nil {
		t.Fatalf("forward range should be valid: %v", err)
	}
	wrapped, err := domain.ParseTimeRange("23:30-00:30")
	if err != nil {
		t.Fatalf("wrapped range should still parse: %v", err)
	}
	if err := wrapped.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("wrapped range should fail validation, got %v", err)
	}
	if err := domain.MustParseTimeRange("10:00-10:00").Validate(); err == nil {
		t.Fatalf("empty range should fail validation")
	}
}

func TestClockTimeOn(t *testing.T) {
	t.Parallel()
	ref := time.Date(2025, 9, 2, 18, 45, 12, 0, time.Local)
	got := domain.ClockTime{Hour: 7, Minute: 30}.On(ref)
	want := time.Date(2025, 9, 2, 7, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCourseValidate(t *testing.T) {
	t.Parallel()
	base := domain.Course{ID: "1", Name: "Sistem Cerdas", Day: domain.Kamis, Credits: 2}
	if err := base.Validate(); err != nil {
		t.Fatalf("course should be valid: %v", err)
	}
	missingName := base
	missingName.Name = " "
	if err := missingName.Validate(); err == nil {
		t.Fatalf("missing name should fail")
	}
	missingID := base
	missingID.ID = ""
	if err := missingID.Validate(); err == nil {
		t.Fatalf("missing id should fail")
	}
	badDay := base
	badDay.Day = "Someday"
	if err := badDay.Validate(); err == nil {
		t.Fatalf("bad day should fail")
	}
	negative := base
	negative.Credits = -1
	if err := negative.Validate(); err == nil {
		t.Fatalf("negative credits should fail")
	}
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()
	course := domain.Course{
		Day:      domain.Selasa,
		Code:     "21TIF607",
		Name:     "Teori Bahasa dan Automata",
		Lecturer: "NADIA ANNISA MAORI, S.Kom., M.Kom.",
	}
	cases := []struct {
		name   string
		filter domain.Filter
		want   bool
	}{
		{name: "zero", filter: domain.Filter{}, want: true},
		{name: "day", filter: domain.Filter{Day: domain.Selasa}, want: true},
		{name: "other day", filter: domain.Filter{Day: domain.Rabu}, want: false},
		{name: "lecturer", filter: domain.Filter{Lecturer: course.Lecturer}, want: true},
		{name: "lecturer partial is not exact", filter: domain.Filter{Lecturer: "NADIA"}, want: false},
		{name: "search name", filter: domain.Filter{Search: "automata"}, want: true},
		{name: "search code", filter: domain.Filter{Search: "tif607"}, want: true},
		{name: "search lecturer", filter: domain.Filter{Search: "maori"}, want: true},
		{name: "search miss", filter: domain.Filter{Search: "geografis"}, want: false},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(course); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
