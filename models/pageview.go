package models

import "time"

// PageView aggregates public traffic per day and path for the dashboard.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex:idx_pageviews_date_path" json:"date"`
	Path      string    `gorm:"size:255;uniqueIndex:idx_pageviews_date_path" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
