package shift

import (
	"context"
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateShiftInput struct {
	ActorID *uint

	ServiceID   uint
	ClientID    uint
	UserID      uint
	DateShift   time.Time
	Description *string
	Price       float64
	Status      *int
}

// Notifier receives shifts that were just booked. Implementations must not
// block and must not fail the booking.
type Notifier interface {
	ShiftAssigned(
		ctx context.Context,
		s *models.Shift,
		client *models.Client,
		service *models.Service,
	)
}

// ======================================================
// USE CASE
// ======================================================

type CreateShift struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCreateShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CreateShift {
	return &CreateShift{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateShift) Execute(
	ctx context.Context,
	in CreateShiftInput,
) (*models.Shift, *models.Service, error) {

	// --------------------------------------------------
	// 1. References
	// --------------------------------------------------
	refs, err := loadReferences(ctx, uc.repo, in.ClientID, in.UserID, in.ServiceID)
	if err != nil {
		return nil, nil, err
	}

	status := domain.InitialStatus()
	if in.Status != nil {
		if status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, nil, err
		}
	}

	if in.DateShift.IsZero() {
		return nil, nil, httperr.Validation("date_shift", "La fecha del turno es requerida.")
	}

	s := &models.Shift{
		ClientID:    in.ClientID,
		UserID:      in.UserID,
		ServiceID:   in.ServiceID,
		DateShift:   in.DateShift.UTC(),
		Description: in.Description,
		Price:       in.Price,
		Status:      int(status),
	}

	// --------------------------------------------------
	// 2. Conflict check + insert under the user lock
	// --------------------------------------------------
	err = uc.repo.WithinUserLock(ctx, in.UserID, func(tx domain.Repository) error {
		if status.Active() {
			if err := assertNoConflict(ctx, tx, s.UserID, s.DateShift, 0); err != nil {
				return err
			}
		}
		return tx.CreateShift(ctx, s)
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID: in.ActorID,
				Action: "shift_conflict",
				Entity: "shift",
				Metadata: map[string]any{
					"user_id":    in.UserID,
					"date_shift": s.DateShift,
				},
			})
		}
		return nil, nil, httperr.FromDB(err, "shift")
	}

	// --------------------------------------------------
	// 3. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "shift_created",
		Entity:   "shift",
		EntityID: &s.ID,
	})

	if uc.notifier != nil {
		uc.notifier.ShiftAssigned(ctx, s, refs.client, refs.service)
	}

	return s, refs.service, nil
}
