package shift

import "github.com/BruksfildServices01/shift-scheduler/internal/httperr"

// ===============================
// Shift Status
// ===============================

type Status int

const (
	StatusScheduled Status = 0
	StatusCompleted Status = 1
	StatusCancelled Status = 2
)

func (s Status) Valid() bool {
	return s >= StatusScheduled && s <= StatusCancelled
}

// Active reports whether the shift still occupies its staff member's agenda.
func (s Status) Active() bool {
	return s == StatusScheduled
}

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ===============================
// Validations
// ===============================

func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return 0, httperr.Validation("status", "El estado del turno es inválido.")
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusScheduled
}
