package shift

import (
	"context"
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ListFilter struct {
	ID        *uint
	ClientID  *uint
	UserID    *uint
	ServiceID *uint
	Status    *int
	From      *time.Time
	To        *time.Time
}

// MonthAggregate is one (year, month) bucket of the report.
type MonthAggregate struct {
	Year  int
	Month time.Month
	Total float64
	Count int
}

type Repository interface {
	// -------- References --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	UserExists(ctx context.Context, id uint) (bool, error)

	// -------- Shift (create / conflict) --------
	// WithinUserLock runs fn in a transaction that holds a row lock on the
	// staff user, serializing conflict checks for that user.
	WithinUserLock(ctx context.Context, userID uint, fn func(tx Repository) error) error

	CountActiveInWindow(
		ctx context.Context,
		userID uint,
		from time.Time,
		to time.Time,
		excludeID uint,
	) (int64, error)

	CreateShift(ctx context.Context, s *models.Shift) error

	// -------- Shift (state change) --------
	GetShift(ctx context.Context, id uint) (*models.Shift, error)
	UpdateShift(ctx context.Context, s *models.Shift) error
	DeleteShift(ctx context.Context, id uint) error

	// -------- Queries --------
	ListShifts(ctx context.Context, f ListFilter) ([]models.Shift, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]models.Shift, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]models.Shift, error)
	MonthlyTotals(ctx context.Context, loc *time.Location) (revenue, cancellations []MonthAggregate, err error)
}
