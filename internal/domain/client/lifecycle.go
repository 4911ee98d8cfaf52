package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/shift-scheduler/internal/models"
)

type ListFilter struct {
	ID *uint
	// Birthday matches clients born on the same month and day, any year.
	Birthday *time.Time
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]models.Client, error)
	// Get finds a client by id, including soft-deleted ones.
	Get(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	// EmailTaken reports whether another client (any status) uses email.
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
}

// SoftDelete marks the client as deleted. It returns false when the client
// was already deleted.
func SoftDelete(c *models.Client) bool {
	if c.Status == models.ClientDeleted {
		return false
	}
	c.Status = models.ClientDeleted
	return true
}

// IsActive reports whether the client can still book shifts.
func IsActive(c *models.Client) bool {
	return c.Status == models.ClientActive
}

// SameBirthday reports whether born falls on the month and day of day.
func SameBirthday(born, day time.Time) bool {
	return born.Month() == day.Month() && born.Day() == day.Day()
}
