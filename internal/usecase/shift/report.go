package shift

import (
	"context"

	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

type MonthlyReport struct {
	repo domain.Repository
}

func NewMonthlyReport(repo domain.Repository) *MonthlyReport {
	return &MonthlyReport{repo: repo}
}

// Execute returns revenue and cancellations of year by month, plus revenue
// totals of every year with completed shifts.
func (uc *MonthlyReport) Execute(
	ctx context.Context,
	year int,
) (domain.Report, error) {

	revenue, cancellations, err := uc.repo.MonthlyTotals(ctx, timezone.Location())
	if err != nil {
		return domain.Report{}, err
	}

	return domain.Project(year, revenue, cancellations), nil
}
