package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// slotColumns колонки таблицы schedule_slots в порядке сканирования
var slotColumns = []string{
	"id",
	"rule_id",
	"professional_id",
	"service_id",
	"date",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с материализованными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один материализованный слот
// Таблица schedule_slots несет UNIQUE (professional_id, date, start_time);
// при занятой тройке возвращает ErrSlotAlreadyExists - вызывающая сторона
// решает, пропустить или заместить. ON CONFLICT DO NOTHING вместо ловли 23505:
// внутри SERIALIZABLE транзакции ошибка insert'а пометила бы транзакцию
// как aborted, и все последующие statements падали бы с 25P02
func (r *Repository) Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_slots").
		Columns(
			"rule_id",
			"professional_id",
			"service_id",
			"date",
			"start_time",
			"end_time",
			"is_active",
		).
		Values(
			s.RuleID,
			s.ProfessionalID,
			s.ServiceID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.IsActive,
		).
		Suffix(`ON CONFLICT (professional_id, date, start_time) DO NOTHING
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// DO NOTHING при конфликте не возвращает строку
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Upsert создает слот либо замещает существующий на то же (professional_id, date, start_time)
// Используется политикой регенерации "replace"
func (r *Repository) Upsert(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_slots").
		Columns(
			"rule_id",
			"professional_id",
			"service_id",
			"date",
			"start_time",
			"end_time",
			"is_active",
		).
		Values(
			s.RuleID,
			s.ProfessionalID,
			s.ServiceID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.IsActive,
		).
		Suffix(`ON CONFLICT (professional_id, date, start_time) DO UPDATE
			SET rule_id = EXCLUDED.rule_id,
			    service_id = EXCLUDED.service_id,
			    end_time = EXCLUDED.end_time,
			    is_active = EXCLUDED.is_active,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// ListWithFilter получает материализованные слоты профессионала с фильтрацией
// по периоду и активности
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("schedule_slots").
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		OrderBy("date ASC, start_time ASC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// DeleteByRuleFromDate удаляет слоты правила начиная с указанной даты
// Прошлые даты не затрагиваются - история остается нетронутой
// Возвращает число удаленных слотов
func (r *Repository) DeleteByRuleFromDate(ctx context.Context, ruleID int64, from time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_slots").
		Where(squirrel.Eq{"rule_id": ruleID}).
		Where(squirrel.GtOrEq{"date": from}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRuleFromDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRuleFromDate - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRuleFromDate - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// MaxDateByRule возвращает последнюю материализованную дату правила
// Используется при регенерации после редактирования, чтобы восстановить
// прежний горизонт; если слотов нет - возвращает ErrSlotNotFound
func (r *Repository) MaxDateByRule(ctx context.Context, ruleID int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(date)").
		From("schedule_slots").
		Where(squirrel.Eq{"rule_id": ruleID}).
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: MaxDateByRule - build select query: %v", ErrBuildQuery, err)
	}

	var maxDate sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxDate); err != nil {
		return time.Time{}, fmt.Errorf("%w: MaxDateByRule - scan max date: %v", ErrScanRow, err)
	}

	if !maxDate.Valid {
		return time.Time{}, ErrSlotNotFound
	}

	return maxDate.Time, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.ScheduleSlot, error) {
	result := make([]*domain.ScheduleSlot, 0)

	for rows.Next() {
		var s domain.ScheduleSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.RuleID,
			&s.ProfessionalID,
			&s.ServiceID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
