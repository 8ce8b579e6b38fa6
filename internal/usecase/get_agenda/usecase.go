package get_agenda

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

// UseCase use case для получения агенды свободных дней объекта
type UseCase struct {
	holidayRepo  HolidayRepository
	visitRepo    VisitRepository
	rules        *schedule.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holidayRepo HolidayRepository, visitRepo VisitRepository, rules *schedule.Rules, logger Logger) *UseCase {
	return &UseCase{
		holidayRepo:  holidayRepo,
		visitRepo:    visitRepo,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит агенду: праздники и визиты за весь диапазон читаются двумя запросами,
// дальше всё считается в памяти.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAgenda: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	days := uc.rules.ClampDays(req.Days)
	result := &Response{PropertyID: req.PropertyID, Days: []Day{}}

	// 2. Диапазон дат
	from, to, ok := uc.rules.AgendaRange(req.Start, now)
	if !ok {
		uc.logger.Info("GetAgenda: property=%d, start is beyond the booking window", req.PropertyID)
		return result, nil
	}

	uc.logger.Info("GetAgenda: property=%d, range %s..%s, days=%d",
		req.PropertyID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), days)

	// 3. Праздники диапазона
	holidays, err := uc.holidayRepo.GetSet(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAgenda: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	// 4. Визиты объекта за диапазон (в любом статусе)
	visits, err := uc.visitRepo.GetByPropertyAndRange(ctx, req.PropertyID, from, to)
	if err != nil {
		uc.logger.Error("GetAgenda: failed to get visits: %v", err)
		return nil, fmt.Errorf("%w: failed to get visits: %v", ErrInternal, err)
	}

	// 5. Строим агенду
	for _, d := range uc.rules.BuildAgenda(req.Start, days, now, holidays, schedule.NewOccupancy(visits)) {
		result.Days = append(result.Days, Day{
			Date:    d.Date,
			Weekday: d.Weekday,
			Slots:   d.Slots,
		})
	}

	uc.logger.Info("GetAgenda: property=%d, %d days with free slots", req.PropertyID, len(result.Days))
	return result, nil
}
