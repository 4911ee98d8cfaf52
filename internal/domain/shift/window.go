package shift

import (
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/httperr"
)

// ConflictWindow is the distance that must separate two active shifts of the
// same staff user.
const ConflictWindow = 15 * time.Minute

// Window returns the inclusive [at-15m, at+15m] interval checked for conflicts.
func Window(at time.Time) (time.Time, time.Time) {
	return at.Add(-ConflictWindow), at.Add(ConflictWindow)
}

func ErrConflict() error {
	return httperr.Conflict(
		"time_conflict",
		"El usuario ya tiene un turno asignado dentro del rango de 15 minutos.",
	)
}
