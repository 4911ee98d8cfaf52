package shift

import (
	"context"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ListShifts struct {
	repo domain.Repository
}

func NewListShifts(repo domain.Repository) *ListShifts {
	return &ListShifts{repo: repo}
}

func (uc *ListShifts) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Shift, error) {

	shifts, err := uc.repo.ListShifts(ctx, f)
	if err != nil {
		return nil, err
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	return shifts, nil
}
