package shift

// MonthNames are the report bucket labels, January first.
var MonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

type Report struct {
	Year            int                `json:"year"`
	TotalPrices     map[string]float64 `json:"totalPrices"`
	CancelledShifts map[string]int     `json:"cancelled_shifts"`
	TotalYears      map[int]float64    `json:"totalYears"`
}

// Project builds the calendar view of one year: all twelve months present,
// zero when the month had no activity. TotalYears keeps every year seen.
func Project(year int, revenue, cancellations []MonthAggregate) Report {
	r := Report{
		Year:            year,
		TotalPrices:     make(map[string]float64, 12),
		CancelledShifts: make(map[string]int, 12),
		TotalYears:      map[int]float64{},
	}
	for _, name := range MonthNames {
		r.TotalPrices[name] = 0
		r.CancelledShifts[name] = 0
	}

	for _, agg := range revenue {
		r.TotalYears[agg.Year] += agg.Total
		if agg.Year == year {
			r.TotalPrices[MonthNames[agg.Month-1]] += agg.Total
		}
	}
	for _, agg := range cancellations {
		if agg.Year == year {
			r.CancelledShifts[MonthNames[agg.Month-1]] += agg.Count
		}
	}

	return r
}
