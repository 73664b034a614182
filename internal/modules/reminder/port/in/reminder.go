package in

import (
	"context"

	"jadwal/internal/modules/reminder/dto"
)

type Usecase interface {
	Plan(ctx context.Context) (dto.PlanOutput, error)
	// Run blocks, arming reminders daily, until ctx is cancelled.
	Run(ctx context.Context, input dto.RunInput) error
	Test(ctx context.Context) (dto.TestOutput, error)
	Doctor(ctx context.Context) (dto.DoctorOutput, error)
}
