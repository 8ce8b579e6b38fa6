package get_agenda

import (
	"context"

	getAgenda "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_agenda"
)

type GetAgendaUseCase interface {
	Execute(ctx context.Context, req *getAgenda.Request) (*getAgenda.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
