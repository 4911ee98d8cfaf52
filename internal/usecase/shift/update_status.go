package shift

import (
	"context"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type UpdateStatusInput struct {
	ActorID *uint
	ID      uint

	Status      int
	Price       float64
	Description *string
}

// UpdateShiftStatus moves a shift to completed/cancelled (or back). The
// conflict window is not re-checked here.
type UpdateShiftStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateShiftStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateShiftStatus {
	return &UpdateShiftStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateShiftStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Shift, error) {

	s, err := uc.repo.GetShift(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(s.Status)
	domain.ChangeStatus(s, status, in.Price, in.Description)

	if err := uc.repo.UpdateShift(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "shift_status_updated",
		Entity:   "shift",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"from": previous.String(),
			"to":   status.String(),
		},
	})

	return s, nil
}
