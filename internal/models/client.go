package models

import "time"

// Client status values. Deleted clients stay in the table so their shifts
// keep a valid reference.
const (
	ClientActive  = 0
	ClientDeleted = 1
)

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        *string    `gorm:"size:100;uniqueIndex" json:"email"`
	CodArea      string     `gorm:"size:10;not null" json:"cod_area"`
	Phone        string     `gorm:"size:20;not null" json:"phone"`
	DateBirthday *time.Time `gorm:"type:date" json:"date_birthday"`
	Status       int        `gorm:"not null;default:0;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}
