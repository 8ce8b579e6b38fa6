package update_visit

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
	updateVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/update_visit"
)

type UpdateVisitUseCase interface {
	Execute(ctx context.Context, req *updateVisit.Request) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
