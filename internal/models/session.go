package models

import "time"

type Session struct {
	Token   string `gorm:"primaryKey;size:36"` // opaque token stored in the cookie
	UserID  int    `gorm:"not null;index"`
	Expires time.Time
	Created time.Time `gorm:"autoCreateTime"`
}
