package in

import (
	"context"
	"time"

	"jadwal/internal/modules/status/dto"
)

type Usecase interface {
	// Today resolves the current day's classes. A zero at means now.
	Today(ctx context.Context, at time.Time) (dto.TodayOutput, error)
	Board(ctx context.Context, input dto.BoardInput) (dto.BoardOutput, error)
}
