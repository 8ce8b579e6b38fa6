package sweep_reservations

import (
	"context"

	sweepExpired "github.com/m04kA/SMC-VisitScheduler/internal/usecase/sweep_expired_reservations"
)

type SweepUseCase interface {
	Execute(ctx context.Context, req *sweepExpired.Request) (*sweepExpired.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
