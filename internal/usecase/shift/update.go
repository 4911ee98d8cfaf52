package shift

import (
	"context"
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type UpdateShiftInput struct {
	ActorID *uint
	ID      uint

	ServiceID   uint
	ClientID    uint
	UserID      uint
	DateShift   time.Time
	Description *string
	Price       float64
	Status      int
}

// UpdateShift rewrites every field of a shift. Unlike status updates, an
// active result goes through the same 15 minute rule as a new booking.
type UpdateShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateShift {
	return &UpdateShift{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateShift) Execute(
	ctx context.Context,
	in UpdateShiftInput,
) (*models.Shift, error) {

	s, err := uc.repo.GetShift(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if _, err := loadReferences(ctx, uc.repo, in.ClientID, in.UserID, in.ServiceID); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.DateShift.IsZero() {
		return nil, httperr.Validation("date_shift", "La fecha del turno es requerida.")
	}

	domain.Reschedule(s, in.ClientID, in.UserID, in.ServiceID, in.DateShift)
	domain.ChangeStatus(s, status, in.Price, in.Description)

	err = uc.repo.WithinUserLock(ctx, s.UserID, func(tx domain.Repository) error {
		if status.Active() {
			if err := assertNoConflict(ctx, tx, s.UserID, s.DateShift, s.ID); err != nil {
				return err
			}
		}
		return tx.UpdateShift(ctx, s)
	})
	if err != nil {
		return nil, httperr.FromDB(err, "shift")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "shift_updated",
		Entity:   "shift",
		EntityID: &s.ID,
	})

	return s, nil
}
