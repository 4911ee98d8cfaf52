package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

// queryUint reads an optional unsigned id from the query string.
func queryUint(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, httperr.Validation(name, "El parámetro "+name+" debe ser numérico.")
	}
	id := uint(v)
	return &id, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, httperr.Validation(name, "El parámetro "+name+" debe ser numérico.")
	}
	return &v, nil
}

// dateRange parses start_date/end_date. A date without time on end_date
// includes that whole day.
func dateRange(startRaw, endRaw string) (*time.Time, *time.Time, error) {
	start, err := timezone.ParseDateTime(startRaw)
	if err != nil {
		return nil, nil, httperr.Validation("start_date", "Fecha de inicio inválida.")
	}
	end, err := timezone.ParseDateTime(endRaw)
	if err != nil {
		return nil, nil, httperr.Validation("end_date", "Fecha de fin inválida.")
	}
	if len(endRaw) == len("2006-01-02") {
		end = end.AddDate(0, 0, 1)
	} else {
		end = end.Add(time.Second)
	}
	if end.Before(start) {
		return nil, nil, httperr.Validation("end_date", "La fecha de fin es anterior a la de inicio.")
	}
	return &start, &end, nil
}

// dayRange returns the bounds of the single calendar day in raw.
func dayRange(raw string) (*time.Time, *time.Time, error) {
	day, err := timezone.ParseDateTime(raw)
	if err != nil {
		return nil, nil, httperr.Validation("date_shift", "Fecha inválida.")
	}
	from, to := timezone.DayBounds(day)
	return &from, &to, nil
}

func formUint(c *gin.Context, name string) (*uint, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, httperr.Validation(name, "El parámetro "+name+" debe ser numérico.")
	}
	id := uint(v)
	return &id, nil
}
