package shift

import (
	"context"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
)

type DestroyShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDestroyShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DestroyShift {
	return &DestroyShift{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DestroyShift) Execute(
	ctx context.Context,
	actorID *uint,
	id uint,
) error {

	if err := uc.repo.DeleteShift(ctx, id); err != nil {
		return httperr.FromDB(err, "shift")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "shift_deleted",
		Entity:   "shift",
		EntityID: &id,
	})

	return nil
}
