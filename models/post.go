package models

import (
	"time"
)

// Post statuses. A post is only publicly visible while published.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post types.
const (
	PostTypeArticle = "article"
	PostTypeNews    = "news"
	PostTypeEvent   = "event"
	PostTypeLecture = "lecture"
)

// Post represents a blog post authored by a user and filed under one category.
type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Slug          string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string         `gorm:"size:500" json:"excerpt"`
	Content       string         `gorm:"type:longtext;not null" json:"content"`
	FeaturedImage string         `gorm:"size:255" json:"featured_image"`
	Type          string         `gorm:"size:16;index;default:'article'" json:"type"`
	Status        string         `gorm:"size:16;index;default:'draft'" json:"status"`
	PublishedAt   *time.Time     `gorm:"index" json:"published_at"`
	MetaData      map[string]any `gorm:"serializer:json;type:json" json:"meta_data"`
	ViewsCount    int            `gorm:"not null;default:0" json:"views_count"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	CategoryID    uint           `gorm:"index;not null" json:"category_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Author        *User          `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags          []Tag          `gorm:"many2many:post_tags;" json:"tags,omitempty"`
	Comments      []Comment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// ValidPostStatus reports whether s is one of the three post statuses.
func ValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished || s == PostStatusArchived
}

// ValidPostType reports whether t is a known post type.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeArticle, PostTypeNews, PostTypeEvent, PostTypeLecture:
		return true
	}
	return false
}

// PublishTimestampOnCreate derives published_at for a new post. An explicit
// timestamp always wins; otherwise a post created directly in published state
// is stamped with now.
func PublishTimestampOnCreate(status string, explicit *time.Time, now time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	if status == PostStatusPublished {
		return &now
	}
	return nil
}

// PublishTimestampOnUpdate derives published_at for an edit. The timestamp is
// refreshed only when the post transitions into published from another state;
// edits that keep the post published, or move it to draft/archived, leave the
// original first-publication time untouched.
func PublishTimestampOnUpdate(prevStatus, nextStatus string, current *time.Time, now time.Time) *time.Time {
	if nextStatus == PostStatusPublished && prevStatus != PostStatusPublished {
		return &now
	}
	return current
}
