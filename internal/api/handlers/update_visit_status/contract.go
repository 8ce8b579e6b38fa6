package update_visit_status

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
)

type VisitService interface {
	UpdateStatus(ctx context.Context, id int64, status domain.VisitStatus, actor domain.Actor) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
