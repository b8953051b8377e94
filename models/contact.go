package models

import "time"

// Contact is a message submitted through the contact form. Records are
// append-only; the application never updates or deletes them.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Message   string    `gorm:"size:80;not null" json:"message"`
	Email     string    `gorm:"size:25;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
