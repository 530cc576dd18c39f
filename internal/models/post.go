package models

import "time"

type Post struct {
	ID         int    `gorm:"primaryKey"`
	Title      string `gorm:"size:250;uniqueIndex;not null"`
	Subtitle   string `gorm:"size:250;not null"`
	Body       string `gorm:"type:text;not null"`
	ImgURL     string `gorm:"size:250;not null"`
	ProjectURL string `gorm:"size:250"` // optional, empty when the post has no project link
	AuthorID   int    `gorm:"not null;index"`
	Author     User
	Created    time.Time `gorm:"autoCreateTime"`

	// Comments go with their post.
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
