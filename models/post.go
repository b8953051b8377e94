package models

import "time"

// Post is a published blog entry. Slug is the public lookup key; uniqueness
// is not enforced, a collision resolves to the first match.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:80;not null" json:"title"`
	Subtitle  string    `gorm:"size:100" json:"subtitle"`
	Slug      string    `gorm:"size:15;index;not null" json:"slug"`
	Content   string    `gorm:"size:100;not null" json:"content"`
	ImgFile   string    `gorm:"size:25" json:"img_file"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
