package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

// UseCase use case для получения свободных слотов объекта на дату
type UseCase struct {
	visitRepo    VisitRepository
	rules        *schedule.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(visitRepo VisitRepository, rules *schedule.Rules, logger Logger) *UseCase {
	return &UseCase{
		visitRepo:    visitRepo,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Выходной день, праздник или дата вне окна здесь не проверяются:
// это делает валидатор при записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Без объекта или даты отдаём весь каталог
	if isCatalogRequest(req) {
		return &Response{
			PropertyID: req.PropertyID,
			Date:       req.Date,
			Slots:      uc.rules.Slots(),
		}, nil
	}

	date := uc.rules.DateOf(req.Date)
	uc.logger.Info("GetAvailableSlots: property=%d, date=%s", req.PropertyID, date.Format(domain.DateFormat))

	// 3. Получаем занятые слоты (визиты в любом статусе)
	occupied, err := uc.visitRepo.GetOccupiedSlots(ctx, req.PropertyID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
	}

	// 4. Убираем занятые и прошедшие слоты
	free := uc.rules.FreeSlots(date, uc.timeProvider.Now(), occupied)

	uc.logger.Info("GetAvailableSlots: %d/%d slots free for property=%d on %s",
		len(free), len(uc.rules.Slots()), req.PropertyID, date.Format(domain.DateFormat))

	return &Response{
		PropertyID: req.PropertyID,
		Date:       date,
		Slots:      free,
	}, nil
}
