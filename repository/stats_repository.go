package repository

import (
	"gorm.io/gorm"

	"inkwell/models"
)

// SiteStats is the dashboard summary. Every figure is recomputed from stored
// state when requested; nothing is cached or denormalized.
type SiteStats struct {
	PostsByStatus    map[string]int64 `json:"posts_by_status"`
	CommentsByStatus map[string]int64 `json:"comments_by_status"`
	TotalPosts       int64            `json:"total_posts"`
	TotalComments    int64            `json:"total_comments"`
	TotalCategories  int64            `json:"total_categories"`
	TotalTags        int64            `json:"total_tags"`
	TotalViews       int64            `json:"total_views"`
	TotalPageViews   int64            `json:"total_page_views"`
}

// StatsStore computes aggregate counts for the dashboard and public index.
type StatsStore interface {
	Site() (*SiteStats, error)
	PublishedPostCount() (int64, error)
}

type gormStatsStore struct {
	db *gorm.DB
}

// NewStatsStore returns a GORM-backed StatsStore.
func NewStatsStore(db *gorm.DB) StatsStore {
	return &gormStatsStore{db: db}
}

func (s *gormStatsStore) Site() (*SiteStats, error) {
	stats := &SiteStats{
		PostsByStatus:    map[string]int64{},
		CommentsByStatus: map[string]int64{},
	}

	type row struct {
		Status string
		N      int64
	}

	var rows []row
	if err := s.db.Model(&models.Post{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.PostsByStatus[r.Status] = r.N
		stats.TotalPosts += r.N
	}

	rows = rows[:0]
	if err := s.db.Model(&models.Comment{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.CommentsByStatus[r.Status] = r.N
		stats.TotalComments += r.N
	}

	if err := s.db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Tag{}).Count(&stats.TotalTags).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Post{}).Select("COALESCE(SUM(views_count), 0)").Scan(&stats.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.PageView{}).Select("COALESCE(SUM(count), 0)").Scan(&stats.TotalPageViews).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *gormStatsStore) PublishedPostCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).
		Where("status = ?", models.PostStatusPublished).
		Count(&count).Error
	return count, err
}
