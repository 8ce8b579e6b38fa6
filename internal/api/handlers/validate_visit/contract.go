package validate_visit

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
)

type VisitService interface {
	Validate(ctx context.Context, c schedule.Candidate, excludeID *int64, actor domain.Actor) (*models.ValidationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
