package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
)

const (
	tableName = "reservations"

	sqlStateUnique = "23505"
)

var columns = []string{
	"id",
	"property_id",
	"interested_id",
	"created_by",
	"created_at",
	"expires_at",
	"deposit",
	"notes",
	"active",
	"closed_reason",
	"closed_at",
}

// Repository репозиторий резерваций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает резервацию
// Вторую активную резервацию на объект отсекает частичный уникальный индекс (ErrActiveExists)
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"property_id",
			"interested_id",
			"created_by",
			"expires_at",
			"deposit",
			"notes",
			"active",
		).
		Values(
			reservation.PropertyID,
			reservation.InterestedID,
			reservation.CreatedBy,
			reservation.ExpiresAt,
			reservation.Deposit,
			reservation.Notes,
			reservation.Active,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrActiveExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает резервацию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// ExistsActiveByProperty есть ли активная резервация на объект (кроме excludeID)
func (r *Repository) ExistsActiveByProperty(ctx context.Context, propertyID int64, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cond := squirrel.And{
		squirrel.Eq{"property_id": propertyID},
		squirrel.Eq{"active": true},
	}
	if excludeID != nil {
		cond = append(cond, squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableName).
		Where(cond).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveByProperty - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveByProperty - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// ListExpired активные резервации с expires_at < now в порядке (expires_at, id)
// after != nil - только строки строго после курсора; limit <= 0 - без ограничения
func (r *Repository) ListExpired(ctx context.Context, now time.Time, after *domain.ExpiryCursor, limit int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Lt{"expires_at": now}).
		OrderBy("expires_at ASC", "id ASC")

	if after != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("(expires_at, id) > (?, ?)", after.ExpiresAt, after.ID))
	}

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExpired - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExpired - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Deactivate снимает флаг active, если он ещё установлен
// Возвращает false, если резервацию уже деактивировал кто-то другой
func (r *Repository) Deactivate(ctx context.Context, id int64, reason domain.ClosedReason, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("active", false).
		Set("closed_reason", reason).
		Set("closed_at", at).
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation  domain.Reservation
		expiresAt    sql.NullTime
		closedAt     sql.NullTime
		closedReason sql.NullString
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.PropertyID,
		&reservation.InterestedID,
		&reservation.CreatedBy,
		&reservation.CreatedAt,
		&expiresAt,
		&reservation.Deposit,
		&reservation.Notes,
		&reservation.Active,
		&closedReason,
		&closedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		reservation.ExpiresAt = &expiresAt.Time
	}
	if closedAt.Valid {
		reservation.ClosedAt = &closedAt.Time
	}
	if closedReason.Valid {
		reason := domain.ClosedReason(closedReason.String)
		reservation.ClosedReason = &reason
	}

	return &reservation, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUnique
}
