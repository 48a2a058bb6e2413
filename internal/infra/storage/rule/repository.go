package rule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ruleColumns колонки таблицы availability_rules в порядке сканирования
var ruleColumns = []string{
	"id",
	"group_id",
	"professional_id",
	"service_id",
	"day_of_week",
	"date",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"break_start",
	"break_end",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var breakStart, breakEnd *string
	if rule.Break != nil {
		s, e := rule.Break.Start.String(), rule.Break.End.String()
		breakStart, breakEnd = &s, &e
	}

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"group_id",
			"professional_id",
			"service_id",
			"day_of_week",
			"date",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"break_start",
			"break_end",
			"is_active",
		).
		Values(
			rule.GroupID,
			rule.ProfessionalID,
			rule.ServiceID,
			rule.DayOfWeek,
			rule.Date,
			rule.StartTime,
			rule.EndTime,
			rule.SlotDurationMinutes,
			breakStart,
			breakEnd,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListByProfessional получает все правила профессионала
// includeInactive управляет включением выключенных правил
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64, includeInactive bool) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("day_of_week ASC NULLS LAST, date ASC NULLS LAST, start_time ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// ListProfessionalIDsWithActiveRecurring получает профессионалов, у которых есть
// хотя бы одно активное еженедельное правило
// Используется фоновой задачей расширения горизонта
func (r *Repository) ListProfessionalIDsWithActiveRecurring(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT professional_id").
		From("availability_rules").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.NotEq{"day_of_week": nil}).
		OrderBy("professional_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionalIDsWithActiveRecurring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionalIDsWithActiveRecurring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListProfessionalIDsWithActiveRecurring - scan professional_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionalIDsWithActiveRecurring - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update обновляет временные параметры правила
func (r *Repository) Update(ctx context.Context, rule *domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var breakStart, breakEnd *string
	if rule.Break != nil {
		s, e := rule.Break.Start.String(), rule.Break.End.String()
		breakStart, breakEnd = &s, &e
	}

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("start_time", rule.StartTime).
		Set("end_time", rule.EndTime).
		Set("slot_duration_minutes", rule.SlotDurationMinutes).
		Set("break_start", breakStart).
		Set("break_end", breakEnd).
		Set("is_active", rule.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Delete удаляет правило
// Материализованные слоты правила удаляются отдельно репозиторием слотов
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует одну строку в правило
func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var (
		rule                 domain.AvailabilityRule
		groupID              uuid.UUID
		dayOfWeek            sql.NullInt64
		date                 sql.NullTime
		breakStart, breakEnd sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&groupID,
		&rule.ProfessionalID,
		&rule.ServiceID,
		&dayOfWeek,
		&date,
		&rule.StartTime,
		&rule.EndTime,
		&rule.SlotDurationMinutes,
		&breakStart,
		&breakEnd,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.GroupID = groupID
	if dayOfWeek.Valid {
		wd := int(dayOfWeek.Int64)
		rule.DayOfWeek = &wd
	}
	if date.Valid {
		d := date.Time
		rule.Date = &d
	}
	if breakStart.Valid && breakEnd.Valid {
		var bs, be types.TimeString
		if err := bs.Scan(breakStart.String); err != nil {
			return nil, err
		}
		if err := be.Scan(breakEnd.String); err != nil {
			return nil, err
		}
		rule.Break = &domain.BreakWindow{Start: bs, End: be}
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// scanRules сканирует результаты запроса в слайс правил
func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
