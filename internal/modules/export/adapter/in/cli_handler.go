package in

import (
	"context"

	"jadwal/internal/modules/export/dto"
	exportin "jadwal/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) PDF(ctx context.Context, outPath string) (dto.PDFOutput, error) {
	return h.usecase.PDF(ctx, dto.PDFInput{OutPath: outPath})
}

func (h CLIHandler) Calendar(ctx context.Context, open bool) (dto.CalendarOutput, error) {
	return h.usecase.Calendar(ctx, dto.CalendarInput{Open: open})
}
