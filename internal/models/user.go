package models

import "time"

// User is a registered account. The admin account is picked out by ID
// in the config, not by a column.
type User struct {
	ID       int       `gorm:"primaryKey"`
	Name     string    `gorm:"size:100;not null"`
	Email    string    `gorm:"size:100;uniqueIndex;not null"`
	Password []byte    `gorm:"not null"` // bcrypt hash
	Created  time.Time `gorm:"autoCreateTime"`

	Posts    []Post    `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:AuthorID"`
}
