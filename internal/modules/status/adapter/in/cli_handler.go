package in

import (
	"context"
	"time"

	"jadwal/internal/modules/status/dto"
	statusin "jadwal/internal/modules/status/port/in"
)

type CLIHandler struct {
	usecase statusin.Usecase
}

func NewCLIHandler(usecase statusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context, at time.Time) (dto.TodayOutput, error) {
	return h.usecase.Today(ctx, at)
}

func (h CLIHandler) Board(ctx context.Context, at time.Time, day, lecturer, search string) (dto.BoardOutput, error) {
	return h.usecase.Board(ctx, dto.BoardInput{At: at, Day: day, Lecturer: lecturer, Search: search})
}
