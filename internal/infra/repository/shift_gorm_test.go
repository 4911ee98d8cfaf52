package repository

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/shift-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

func TestMonthlyTotals_GroupsByMonthAndStatus(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewShiftGormRepository(gdb)

	add := func(at time.Time, price float64, status domain.Status) {
		t.Helper()
		s := models.Shift{
			ClientID:  fx.Client.ID,
			UserID:    fx.User.ID,
			ServiceID: fx.Service.ID,
			DateShift: at.UTC(),
			Price:     price,
			Status:    int(status),
		}
		if err := gdb.Create(&s).Error; err != nil {
			t.Fatalf("create shift: %v", err)
		}
	}

	add(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), 100, domain.StatusCompleted)
	add(time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC), 50, domain.StatusCompleted)
	add(time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC), 70, domain.StatusCompleted)
	add(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 30, domain.StatusCancelled)
	add(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), 30, domain.StatusScheduled)

	revenue, cancellations, err := repo.MonthlyTotals(context.Background(), time.UTC)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}

	if len(revenue) != 2 {
		t.Fatalf("expected 2 revenue buckets, got %+v", revenue)
	}
	if revenue[0].Year != 2024 || revenue[0].Month != time.January || revenue[0].Total != 150 || revenue[0].Count != 2 {
		t.Fatalf("unexpected first bucket %+v", revenue[0])
	}
	if revenue[1].Year != 2025 || revenue[1].Month != time.January || revenue[1].Total != 70 {
		t.Fatalf("unexpected second bucket %+v", revenue[1])
	}
	if len(cancellations) != 1 || cancellations[0].Month != time.March || cancellations[0].Count != 1 {
		t.Fatalf("unexpected cancellations %+v", cancellations)
	}
}

func TestMonthlyTotals_UsesZoneForMonthBoundaries(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	repo := NewShiftGormRepository(gdb)

	// 02:00 UTC on Feb 1st is still January 31st at UTC-3.
	s := models.Shift{
		ClientID:  fx.Client.ID,
		UserID:    fx.User.ID,
		ServiceID: fx.Service.ID,
		DateShift: time.Date(2024, 2, 1, 2, 0, 0, 0, time.UTC),
		Price:     40,
		Status:    int(domain.StatusCompleted),
	}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("create shift: %v", err)
	}

	revenue, _, err := repo.MonthlyTotals(context.Background(), time.FixedZone("UTC-3", -3*60*60))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(revenue) != 1 || revenue[0].Month != time.January || revenue[0].Total != 40 {
		t.Fatalf("expected the shift in January, got %+v", revenue)
	}

	revenue, _, err = repo.MonthlyTotals(context.Background(), time.UTC)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(revenue) != 1 || revenue[0].Month != time.February {
		t.Fatalf("expected the shift in February at UTC, got %+v", revenue)
	}
}
