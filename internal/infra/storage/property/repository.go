package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
)

// Repository репозиторий объектов недвижимости
// Сервис читает владельца и статус и меняет только статус
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объект по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.get(ctx, "GetByID", id, false)
}

// LockByID получает объект и блокирует строку до конца транзакции (SELECT ... FOR UPDATE)
// Это блокировка намерения для всех изменений визитов и резерваций объекта.
// Вне транзакции работает как GetByID.
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.get(ctx, "LockByID", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, op string, id int64, forUpdate bool) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "owner_user_id", "title", "status").
		From("properties").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		property domain.Property
		ownerID  sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&property.ID,
		&ownerID,
		&property.Title,
		&property.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan property: %v", ErrScanRow, op, err)
	}

	if ownerID.Valid {
		property.OwnerUserID = &ownerID.Int64
	}

	return &property, nil
}

// UpdateStatus обновляет статус объекта
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("properties").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPropertyNotFound
	}

	return nil
}
