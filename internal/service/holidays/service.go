package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	holidayRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/holidays/models"
)

// Service сервис для работы с праздничными днями
type Service struct {
	holidayRepo HolidayRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса праздников
func NewService(holidayRepo HolidayRepository, logger Logger) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		logger:      logger,
	}
}

// List возвращает праздники в диапазоне дат (границы включительно, nil - без ограничения)
func (s *Service) List(ctx context.Context, from, to *time.Time) ([]*models.HolidayResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	holidays, err := s.holidayRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidays(holidays), nil
}

// Create добавляет праздник
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest, actor domain.Actor) (*models.HolidayResponse, error) {
	s.logger.Info("Create: adding holiday date=%s by user=%d", req.Date.Format(domain.DateFormat), actor.UserID)

	// 1. Проверяем права доступа
	if !actor.IsAdmin() {
		s.logger.Warn("Create: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	label := strings.TrimSpace(req.Label)
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(label) > domain.MaxHolidayLabelLength {
		return nil, fmt.Errorf("%w: label is longer than %d characters", ErrInvalidInput, domain.MaxHolidayLabelLength)
	}

	// 3. Сохраняем
	created, err := s.holidayRepo.Create(ctx, &domain.Holiday{Date: req.Date, Label: label})
	if err != nil {
		if errors.Is(err, holidayRepo.ErrDuplicateHoliday) {
			s.logger.Warn("Create: holiday on %s already exists", req.Date.Format(domain.DateFormat))
			return nil, ErrHolidayAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: holiday %s (%s) added", created.Date.Format(domain.DateFormat), created.Label)
	return models.FromDomainHoliday(created), nil
}

// Delete удаляет праздник по дате
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, date time.Time, actor domain.Actor) error {
	s.logger.Info("Delete: removing holiday date=%s by user=%d", date.Format(domain.DateFormat), actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%d is not an admin", actor.UserID)
		return ErrAccessDenied
	}

	if err := s.holidayRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}
