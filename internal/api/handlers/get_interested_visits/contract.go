package get_interested_visits

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
)

type VisitService interface {
	GetByInterested(ctx context.Context, interestedID int64, status *domain.VisitStatus, actor domain.Actor) ([]*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
