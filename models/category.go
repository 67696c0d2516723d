package models

import "time"

// Category groups posts; every post belongs to exactly one category.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:500" json:"description"`
	Color       string    `gorm:"size:7" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `json:"-"`

	// PostsCount is populated by list queries, not stored.
	PostsCount int64 `gorm:"-" json:"posts_count"`
}
