package in

import (
	"context"

	"jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
)

type CLIHandler struct {
	usecase timetablein.Usecase
}

func NewCLIHandler(usecase timetablein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, day, lecturer, search string) ([]dto.CourseOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Day: day, Lecturer: lecturer, Search: search})
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.CourseDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddCourseInput) (dto.CourseOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Seed(ctx context.Context) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}

func (h CLIHandler) Lecturers(ctx context.Context) ([]string, error) {
	return h.usecase.Lecturers(ctx)
}
