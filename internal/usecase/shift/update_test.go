package shift

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/infra/repository"
)

func TestUpdateShift_RechecksConflictExcludingItself(t *testing.T) {
	gdb, fx, create, _ := setup(t)
	ctx := context.Background()
	repo := repository.NewShiftGormRepository(gdb)
	uc := NewUpdateShift(repo, nil)

	first, _, err := create.Execute(ctx, input(fx, base))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, _, err := create.Execute(ctx, input(fx, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	update := UpdateShiftInput{
		ID:        first.ID,
		ServiceID: fx.Service.ID,
		ClientID:  fx.Client.ID,
		UserID:    fx.User.ID,
		DateShift: base.Add(5 * time.Minute),
		Price:     2000,
		Status:    int(domain.StatusScheduled),
	}

	// Moving a shift inside its own window is fine.
	s, err := uc.Execute(ctx, update)
	if err != nil {
		t.Fatalf("moving within own window: %v", err)
	}
	if s.Price != 2000 {
		t.Fatalf("expected price 2000, got %v", s.Price)
	}

	update.DateShift = second.DateShift.Add(-10 * time.Minute)
	if _, err := uc.Execute(ctx, update); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict with the second shift, got %v", err)
	}

	// A cancelled result does not occupy the agenda.
	update.Status = int(domain.StatusCancelled)
	if _, err := uc.Execute(ctx, update); err != nil {
		t.Fatalf("cancelled update must skip the check: %v", err)
	}
}

func TestUpdateShift_NotFound(t *testing.T) {
	gdb, fx, _, _ := setup(t)
	uc := NewUpdateShift(repository.NewShiftGormRepository(gdb), nil)

	_, err := uc.Execute(context.Background(), UpdateShiftInput{
		ID:        42,
		ServiceID: fx.Service.ID,
		ClientID:  fx.Client.ID,
		UserID:    fx.User.ID,
		DateShift: base,
	})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateShiftStatus_DoesNotRecheck(t *testing.T) {
	gdb, fx, create, _ := setup(t)
	ctx := context.Background()
	repo := repository.NewShiftGormRepository(gdb)
	status := NewUpdateShiftStatus(repo, nil)

	first, _, err := create.Execute(ctx, input(fx, base))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := status.Execute(ctx, UpdateStatusInput{ID: first.ID, Status: int(domain.StatusCancelled)}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, _, err := create.Execute(ctx, input(fx, base)); err != nil {
		t.Fatalf("rebook: %v", err)
	}

	// Reactivating the cancelled shift would overlap, but status changes are
	// not re-validated.
	if _, err := status.Execute(ctx, UpdateStatusInput{ID: first.ID, Status: int(domain.StatusScheduled)}); err != nil {
		t.Fatalf("reactivate: %v", err)
	}

	if _, err := status.Execute(ctx, UpdateStatusInput{ID: first.ID, Status: 9}); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := status.Execute(ctx, UpdateStatusInput{ID: 999, Status: 1}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDestroyShift(t *testing.T) {
	gdb, fx, create, _ := setup(t)
	ctx := context.Background()
	destroy := NewDestroyShift(repository.NewShiftGormRepository(gdb), nil)

	s, _, err := create.Execute(ctx, input(fx, base))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := destroy.Execute(ctx, nil, s.ID); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if got := countShifts(t, gdb); got != 0 {
		t.Fatalf("expected no shifts, got %d", got)
	}
	if err := destroy.Execute(ctx, nil, s.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("second destroy should be not found, got %v", err)
	}
}
