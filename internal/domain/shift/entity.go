package shift

import (
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ChangeStatus applies a status update. Price and description travel with the
// status because completing a shift usually settles its final price.
func ChangeStatus(s *models.Shift, status Status, price float64, description *string) {
	s.Status = int(status)
	s.Price = price
	s.Description = description
}

// Reschedule replaces the scheduling fields of s.
func Reschedule(s *models.Shift, clientID, userID, serviceID uint, at time.Time) {
	s.ClientID = clientID
	s.UserID = userID
	s.ServiceID = serviceID
	s.DateShift = at.UTC()
}
