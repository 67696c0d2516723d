package models

import "time"

// Tag labels posts through the post_tags join table.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Color     string    `gorm:"size:7" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"many2many:post_tags;" json:"-"`

	// PostsCount is populated by list queries, not stored.
	PostsCount int64 `gorm:"-" json:"posts_count"`
}

// DiffTagIDs computes the symmetric difference between a post's current tag
// set and the desired one, so a sync adds and removes only the delta and
// never writes duplicate join rows. Applying the result twice is a no-op.
func DiffTagIDs(current, desired []uint) (add, remove []uint) {
	have := make(map[uint]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[uint]bool, len(desired))
	for _, id := range desired {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if !want[id] {
			remove = append(remove, id)
		}
	}
	return add, remove
}
