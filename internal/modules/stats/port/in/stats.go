package in

import (
	"context"

	"jadwal/internal/modules/stats/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
