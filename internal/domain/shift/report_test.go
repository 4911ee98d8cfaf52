package shift

import (
	"testing"
	"time"
)

func TestProject_EmptyYieldsTwelveZeroMonths(t *testing.T) {
	r := Project(2024, nil, nil)

	if r.Year != 2024 {
		t.Fatalf("expected year 2024, got %d", r.Year)
	}
	if len(r.TotalPrices) != 12 || len(r.CancelledShifts) != 12 {
		t.Fatalf("expected 12 buckets, got %d/%d", len(r.TotalPrices), len(r.CancelledShifts))
	}
	for _, name := range MonthNames {
		if r.TotalPrices[name] != 0 || r.CancelledShifts[name] != 0 {
			t.Fatalf("month %s should be zero", name)
		}
	}
	if len(r.TotalYears) != 0 {
		t.Fatalf("expected no years, got %v", r.TotalYears)
	}
}

func TestProject_KeepsOtherYearsOutOfMonths(t *testing.T) {
	revenue := []MonthAggregate{
		{Year: 2024, Month: time.January, Total: 150, Count: 2},
		{Year: 2025, Month: time.January, Total: 70, Count: 1},
	}
	cancellations := []MonthAggregate{
		{Year: 2024, Month: time.March, Count: 1},
		{Year: 2025, Month: time.March, Count: 4},
	}

	r := Project(2024, revenue, cancellations)

	if r.TotalPrices["enero"] != 150 {
		t.Fatalf("expected enero=150, got %v", r.TotalPrices["enero"])
	}
	if r.CancelledShifts["marzo"] != 1 {
		t.Fatalf("expected marzo=1, got %v", r.CancelledShifts["marzo"])
	}
	if r.TotalYears[2024] != 150 || r.TotalYears[2025] != 70 {
		t.Fatalf("unexpected totalYears %v", r.TotalYears)
	}
}
