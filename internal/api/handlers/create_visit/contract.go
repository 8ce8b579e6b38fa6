package create_visit

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
	createVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_visit"
)

type CreateVisitUseCase interface {
	Execute(ctx context.Context, req *createVisit.Request) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
