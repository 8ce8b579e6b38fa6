package sweep_expired_reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// DefaultBatchSize размер пачки по умолчанию
const DefaultBatchSize = 500

// UseCase use case освобождения просроченных резерваций
type UseCase struct {
	reservationRepo ReservationRepository
	reconciler      PropertyReconciler
	announcer       Announcer
	metrics         Metrics
	txManager       TransactionManager
	batchSize       int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	reconciler PropertyReconciler,
	announcer Announcer,
	metrics Metrics,
	txManager TransactionManager,
	batchSize int,
	logger Logger,
) *UseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		reconciler:      reconciler,
		announcer:       announcer,
		metrics:         metrics,
		txManager:       txManager,
		batchSize:       batchSize,
		logger:          logger,
	}
}

// Execute снимает все активные резервации с истёкшим сроком
// Каждая резервация обрабатывается в своей транзакции: ошибка одной не мешает остальным.
// Повторный запуск ничего не меняет и никого не уведомляет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	uc.logger.Info("SweepExpiredReservations: now=%s", now.Format(time.RFC3339))

	resp := &Response{}
	var cursor *domain.ExpiryCursor
	for {
		// 1. Берём очередную пачку просроченных резерваций после курсора,
		// так каждая резервация просматривается за запуск не больше одного раза
		batch, err := uc.reservationRepo.ListExpired(ctx, now, cursor, uc.batchSize)
		if err != nil {
			uc.logger.Error("SweepExpiredReservations: failed to list expired reservations: %v", err)
			uc.finish(resp)
			return resp, fmt.Errorf("%w: failed to list expired reservations: %v", ErrInternal, err)
		}
		if len(batch) == 0 {
			break
		}

		// 2. Освобождаем по одной
		for _, reservation := range batch {
			if err := ctx.Err(); err != nil {
				uc.finish(resp)
				return resp, err
			}

			released, err := uc.release(ctx, reservation, now)
			if err != nil {
				uc.logger.Error("SweepExpiredReservations: reservation id=%d: %v", reservation.ID, err)
				uc.metrics.IncSweepFailure()
				resp.Failed++
				continue
			}
			if !released {
				continue
			}

			resp.Released++

			// 3. Уведомления только после фиксации транзакции
			uc.announcer.NotifyExpired(ctx, reservation)
		}

		// неполная пачка - последняя
		if len(batch) < uc.batchSize {
			break
		}
		next, ok := domain.CursorAfter(batch[len(batch)-1])
		if !ok {
			break
		}
		cursor = &next
	}

	uc.finish(resp)
	return resp, nil
}

func (uc *UseCase) finish(resp *Response) {
	uc.metrics.AddReservationsReleased(resp.Released)
	uc.logger.Info("SweepExpiredReservations: released=%d, failed=%d", resp.Released, resp.Failed)
}

// release деактивирует резервацию и согласует статус объекта
// false - резервацию уже снял кто-то другой
func (uc *UseCase) release(ctx context.Context, reservation *domain.Reservation, now time.Time) (bool, error) {
	var released bool

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		ok, err := uc.reservationRepo.Deactivate(txCtx, reservation.ID, domain.ClosedReasonExpired, now)
		if err != nil {
			return fmt.Errorf("%w: failed to deactivate: %v", ErrInternal, err)
		}
		released = ok
		if !ok {
			return nil
		}

		if _, err := uc.reconciler.ReconcileProperty(txCtx, reservation.PropertyID); err != nil {
			return fmt.Errorf("%w: failed to reconcile property id=%d: %v", ErrInternal, reservation.PropertyID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if released {
		reason, closedAt := domain.ClosedReasonExpired, now
		reservation.Active = false
		reservation.ClosedReason = &reason
		reservation.ClosedAt = &closedAt
	}
	return released, nil
}
