package usecase_test

import (
	"context"
	"errors"
	"testing"

	"jadwal/internal/modules/stats/service"
	"jadwal/internal/modules/stats/usecase"
	timetable "jadwal/internal/modules/timetable/domain"
	timetabledto "jadwal/internal/modules/timetable/dto"
)

type fakeTimetable struct {
	courses []timetabledto.CourseOutput
	err     error
}

func (f fakeTimetable) List(context.Context, timetabledto.ListInput) ([]timetabledto.CourseOutput, error) {
	return f.courses, f.err
}

func (fakeTimetable) Get(context.Context, string) (timetabledto.CourseDetailOutput, error) {
	return timetabledto.CourseDetailOutput{}, nil
}

func (fakeTimetable) Add(context.Context, timetabledto.AddCourseInput) (timetabledto.CourseOutput, error) {
	return timetabledto.CourseOutput{}, nil
}

func (fakeTimetable) Seed(context.Context) (timetabledto.SeedOutput, error) {
	return timetabledto.SeedOutput{}, nil
}

func (fakeTimetable) Reindex(context.Context, timetabledto.ReindexInput) error { return nil }

func (fakeTimetable) Lecturers(context.Context) ([]string, error) { return nil, nil }

func TestSummaryMapsCatalog(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewStatsService(fakeTimetable{courses: []timetabledto.CourseOutput{
		{Day: timetable.Rabu, Time: timetable.MustParseTimeRange("10:00-12:30"), Credits: 3},
		{Day: timetable.Rabu, Time: timetable.MustParseTimeRange("18:00-19:00"), Credits: 1},
	}}))
	out, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalCredits != 4 || out.TotalClasses != 2 || out.BusiestDay != "Rabu" {
		t.Fatalf("unexpected summary %+v", out)
	}
	if out.Morning != 1 || out.Evening != 1 || out.PerDay[2].Day != "Rabu" || out.PerDay[2].Count != 2 {
		t.Fatalf("unexpected breakdown %+v", out)
	}
}

func TestSummaryPropagatesCatalogError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	uc := usecase.NewInteractor(service.NewStatsService(fakeTimetable{err: boom}))
	if _, err := uc.Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}
