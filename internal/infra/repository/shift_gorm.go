package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ShiftGormRepository struct {
	db *gorm.DB
}

func NewShiftGormRepository(db *gorm.DB) *ShiftGormRepository {
	return &ShiftGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *ShiftGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, "client_not_found", "El cliente no fue encontrado.")
	}
	return &client, nil
}

func (r *ShiftGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Preload("Price").
		First(&service, id).Error; err != nil {
		return nil, notFound(err, "service_not_found", "El servicio no fue encontrado.")
	}
	return &service, nil
}

func (r *ShiftGormRepository) UserExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Shift (create / conflict)
// --------------------------------------------------

func (r *ShiftGormRepository) WithinUserLock(
	ctx context.Context,
	userID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&user, userID).Error; err != nil {
			return err
		}

		return fn(&ShiftGormRepository{db: tx})
	})
}

func (r *ShiftGormRepository) CountActiveInWindow(
	ctx context.Context,
	userID uint,
	from time.Time,
	to time.Time,
	excludeID uint,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where(
			"user_id = ? AND status = ? AND date_shift BETWEEN ? AND ?",
			userID,
			int(domain.StatusScheduled),
			from.UTC(),
			to.UTC(),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ShiftGormRepository) CreateShift(
	ctx context.Context,
	s *models.Shift,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

// --------------------------------------------------
// Shift (state change)
// --------------------------------------------------

func (r *ShiftGormRepository) GetShift(
	ctx context.Context,
	id uint,
) (*models.Shift, error) {

	var s models.Shift
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, "shift_not_found", "El turno no fue encontrado.")
	}
	return &s, nil
}

func (r *ShiftGormRepository) UpdateShift(
	ctx context.Context,
	s *models.Shift,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *ShiftGormRepository) DeleteShift(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Shift{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("shift_not_found", "El turno no fue encontrado.")
	}
	return nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *ShiftGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Client").
		Preload("Service").
		Preload("Service.Price")
}

func (r *ShiftGormRepository) ListShifts(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Shift, error) {

	q := r.withRelations(ctx)

	if f.ID != nil {
		q = q.Where("shifts.id = ?", *f.ID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("date_shift >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("date_shift < ?", f.To.UTC())
	}

	var shifts []models.Shift
	if err := q.Order("date_shift ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftGormRepository) ListActiveBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Shift, error) {

	var shifts []models.Shift
	err := r.withRelations(ctx).
		Where(
			"status = ? AND date_shift >= ? AND date_shift < ?",
			int(domain.StatusScheduled),
			from.UTC(),
			to.UTC(),
		).
		Order("date_shift ASC").
		Find(&shifts).Error

	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftGormRepository) ListCreatedBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Shift, error) {

	var shifts []models.Shift
	err := r.withRelations(ctx).
		Where("created_at BETWEEN ? AND ?", from.UTC(), to.UTC()).
		Order("created_at ASC").
		Find(&shifts).Error

	if err != nil {
		return nil, err
	}
	return shifts, nil
}

type monthRow struct {
	Period string
	Status int
	Total  float64
	Shifts int
}

// MonthlyTotals sums completed and counts cancelled shifts per calendar month
// of loc.
func (r *ShiftGormRepository) MonthlyTotals(
	ctx context.Context,
	loc *time.Location,
) ([]domain.MonthAggregate, []domain.MonthAggregate, error) {

	expr, arg := r.monthExpr(loc)

	var rows []monthRow
	err := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Select(expr+" AS period, status, COALESCE(SUM(price), 0) AS total, COUNT(*) AS shifts", arg).
		Where("status IN ?", []int{int(domain.StatusCompleted), int(domain.StatusCancelled)}).
		Group("period, status").
		Order("period ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, nil, err
	}

	var revenue, cancellations []domain.MonthAggregate
	for _, row := range rows {
		var year, month int
		if _, err := fmt.Sscanf(row.Period, "%d-%d", &year, &month); err != nil {
			return nil, nil, fmt.Errorf("report period %q: %w", row.Period, err)
		}

		agg := domain.MonthAggregate{
			Year:  year,
			Month: time.Month(month),
			Total: row.Total,
			Count: row.Shifts,
		}
		switch domain.Status(row.Status) {
		case domain.StatusCompleted:
			revenue = append(revenue, agg)
		case domain.StatusCancelled:
			cancellations = append(cancellations, agg)
		}
	}
	return revenue, cancellations, nil
}

// monthExpr renders date_shift as "YYYY-MM" in loc. sqlite has no zone
// database, so it shifts by the current offset of loc.
func (r *ShiftGormRepository) monthExpr(loc *time.Location) (string, any) {
	if r.db.Dialector.Name() == "sqlite" {
		_, offset := time.Now().In(loc).Zone()
		return "strftime('%Y-%m', date_shift, ?)", fmt.Sprintf("%+d minutes", offset/60)
	}
	return "to_char(date_shift AT TIME ZONE ?, 'YYYY-MM')", loc.String()
}

// notFound turns a missing row into a business error and passes any other
// failure through.
func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code, message)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ShiftGormRepository)(nil)
