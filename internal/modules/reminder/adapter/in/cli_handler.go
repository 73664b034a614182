package in

import (
	"context"

	"jadwal/internal/modules/reminder/dto"
	reminderin "jadwal/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Plan(ctx context.Context) (dto.PlanOutput, error) {
	return h.usecase.Plan(ctx)
}

func (h CLIHandler) Run(ctx context.Context, metricsAddr string) error {
	return h.usecase.Run(ctx, dto.RunInput{MetricsAddr: metricsAddr})
}

func (h CLIHandler) Test(ctx context.Context) (dto.TestOutput, error) {
	return h.usecase.Test(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	return h.usecase.Doctor(ctx)
}
