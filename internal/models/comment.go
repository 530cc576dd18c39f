package models

import "time"

// Comment is immutable once written; the admin may delete it.
type Comment struct {
	ID       int    `gorm:"primaryKey"`
	Text     string `gorm:"type:text;not null"`
	AuthorID int    `gorm:"not null;index"`
	Author   User
	PostID   int       `gorm:"not null;index"`
	Created  time.Time `gorm:"autoCreateTime"`
}
