package usecase

import (
	"context"

	"jadwal/internal/modules/timetable/domain"
	"jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
	"jadwal/internal/modules/timetable/service"
)

type Interactor struct {
	svc *service.CourseService
}

func NewInteractor(svc *service.CourseService) timetablein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.CourseOutput, error) {
	filter := domain.Filter{Lecturer: input.Lecturer, Search: input.Search}
	if input.Day != "" {
		day, err := domain.ParseDay(input.Day)
		if err != nil {
			return nil, err
		}
		filter.Day = day
	}
	courses, err := i.svc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseOutput, 0, len(courses))
	for _, course := range courses {
		out = append(out, toOutput(course))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.CourseDetailOutput, error) {
	doc, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.CourseDetailOutput{}, err
	}
	return dto.CourseDetailOutput{
		CourseOutput: toOutput(doc.Course),
		Slug:         doc.Course.Slug,
		Notes:        domain.SummaryBlock.Strip(doc.Body),
	}, nil
}

func (i *Interactor) Add(ctx context.Context, input dto.AddCourseInput) (dto.CourseOutput, error) {
	course, err := i.svc.Add(ctx, service.AddParams{
		Day:      input.Day,
		Time:     input.Time,
		Code:     input.Code,
		Name:     input.Name,
		Credits:  input.Credits,
		Class:    input.Class,
		Lecturer: input.Lecturer,
		Room:     input.Room,
		Faculty:  input.Faculty,
	})
	if err != nil {
		return dto.CourseOutput{}, err
	}
	return toOutput(course), nil
}

func (i *Interactor) Seed(ctx context.Context) (dto.SeedOutput, error) {
	created, skipped, err := i.svc.Seed(ctx)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{Created: created, Skipped: skipped}, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Lecturers(ctx context.Context) ([]string, error) {
	return i.svc.Lecturers(ctx)
}

func toOutput(course domain.Course) dto.CourseOutput {
	return dto.CourseOutput{
		ID:       course.ID,
		Day:      course.Day,
		Time:     course.Time,
		Code:     course.Code,
		Name:     course.Name,
		Credits:  course.Credits,
		Class:    course.Class,
		Lecturer: course.Lecturer,
		Room:     course.Room,
		Faculty:  course.Faculty,
		NotePath: course.NotePath,
	}
}
