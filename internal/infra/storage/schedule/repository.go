package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	"github.com/salonhub/SLN-BookingService/pkg/dbmetrics"
	"github.com/salonhub/SLN-BookingService/pkg/psqlbuilder"
)

var weeklyHoursColumns = []string{
	"id",
	"company_id",
	"weekday",
	"open_from",
	"open_to",
	"break_from",
	"break_to",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"company_id",
	"override_date",
	"open_from",
	"open_to",
	"break_from",
	"break_to",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписания: недельные часы работы,
// переопределения на даты и конфигурация расчёта слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyHours получает недельное расписание компании (до 7 строк, по одной на день)
func (r *Repository) GetWeeklyHours(ctx context.Context, companyID int64) ([]*domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyHoursColumns...).
		From("weekly_hours").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WeeklyHours, 0)
	for rows.Next() {
		h, err := scanWeeklyHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetWeeklyHoursForDay получает расписание компании на день недели
func (r *Repository) GetWeeklyHoursForDay(ctx context.Context, companyID int64, weekday time.Weekday) (*domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyHoursColumns...).
		From("weekly_hours").
		Where(squirrel.Eq{"company_id": companyID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHoursForDay - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanWeeklyHours(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWeeklyHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHoursForDay - scan row: %v", ErrScanRow, err)
	}

	return h, nil
}

// ReplaceWeeklyHours атомарно заменяет недельное расписание компании.
// Вызывается внутри транзакции из сервиса расписания.
func (r *Repository) ReplaceWeeklyHours(ctx context.Context, companyID int64, hours []*domain.WeeklyHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("weekly_hours").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("weekly_hours").
		Columns("company_id", "weekday", "open_from", "open_to", "break_from", "break_to")

	for _, h := range hours {
		insertBuilder = insertBuilder.Values(
			companyID,
			int(h.Weekday),
			h.OpenFrom,
			h.OpenTo,
			h.BreakFrom,
			h.BreakTo,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetOverride получает переопределение расписания на дату
func (r *Repository) GetOverride(ctx context.Context, companyID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"company_id": companyID, "override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan row: %v", ErrScanRow, err)
	}

	return o, nil
}

// ListOverrides получает переопределения компании за период
func (r *Repository) ListOverrides(ctx context.Context, companyID int64, from, to time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или обновляет переопределение на дату
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("company_id", "override_date", "open_from", "open_to", "break_from", "break_to", "reason").
		Values(
			override.CompanyID,
			override.Date,
			override.OpenFrom,
			override.OpenTo,
			override.BreakFrom,
			override.BreakTo,
			override.Reason,
		).
		Suffix(`ON CONFLICT (company_id, override_date) DO UPDATE SET
			open_from = EXCLUDED.open_from,
			open_to = EXCLUDED.open_to,
			break_from = EXCLUDED.break_from,
			break_to = EXCLUDED.break_to,
			reason = EXCLUDED.reason,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет переопределение на дату
func (r *Repository) DeleteOverride(ctx context.Context, companyID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"company_id": companyID, "override_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// GetConfig получает конфигурацию расчёта слотов компании
func (r *Repository) GetConfig(ctx context.Context, companyID int64) (*domain.CompanyScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_id",
		"step_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("company_schedule_config").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.CompanyScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.CompanyID,
		&cfg.StepMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// UpsertConfig создает или обновляет конфигурацию расчёта слотов
func (r *Repository) UpsertConfig(ctx context.Context, cfg *domain.CompanyScheduleConfig) (*domain.CompanyScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("company_schedule_config").
		Columns("company_id", "step_minutes", "advance_booking_days", "min_booking_notice_minutes").
		Values(cfg.CompanyID, cfg.StepMinutes, cfg.AdvanceBookingDays, cfg.MinBookingNoticeMinutes).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			step_minutes = EXCLUDED.step_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertConfig - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWeeklyHours(row rowScanner) (*domain.WeeklyHours, error) {
	var h domain.WeeklyHours
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&h.ID,
		&h.CompanyID,
		&weekday,
		&h.OpenFrom,
		&h.OpenTo,
		&h.BreakFrom,
		&h.BreakTo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Weekday = time.Weekday(weekday)
	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var o domain.DateOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&o.Date,
		&o.OpenFrom,
		&o.OpenTo,
		&o.BreakFrom,
		&o.BreakTo,
		&o.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
