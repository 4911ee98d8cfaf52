package models

import "time"

// Url is a public link attached to the business or to one of its services,
// e.g. an uploaded service picture.
type Url struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	URL       string `gorm:"size:500;not null" json:"url"`
	ServiceID *uint  `gorm:"index" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
