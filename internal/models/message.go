package models

import "time"

// Message is a contact-form submission. No relations, never updated,
// readable only from the admin inbox.
type Message struct {
	ID      int       `gorm:"primaryKey"`
	Name    string    `gorm:"size:250;not null"`
	Email   string    `gorm:"size:250;not null"`
	Phone   string    `gorm:"size:100"` // optional
	Body    string    `gorm:"column:message;type:text;not null"`
	Created time.Time `gorm:"autoCreateTime"`
}
