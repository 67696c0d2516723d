package repository

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/models"
)

// CommentFilter narrows the admin comment listing. The search term is
// OR-matched against content, author name and author email.
type CommentFilter struct {
	Status  string // exact match
	Search  string
	Page    int
	PerPage int
}

// CommentPage is one page of the admin comment listing.
type CommentPage struct {
	Items      []models.Comment
	Pagination Pagination
}

// ModerationStats are live counts over current comment state, recomputed per
// request rather than denormalized.
type ModerationStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Spam     int64 `json:"spam"`
}

// CommentStore is the persistence boundary for comments.
type CommentStore interface {
	ListAdmin(f CommentFilter) (*CommentPage, error)
	Stats() (ModerationStats, error)
	// Thread returns the public view of a post's comments: approved
	// top-level comments newest first, each with its approved replies.
	Thread(postID uint) ([]models.Comment, error)
	// ListForPost returns every comment of a post regardless of status,
	// newest first, for the admin post view.
	ListForPost(postID uint) ([]models.Comment, error)
	GetByID(id uint, withRelations bool) (*models.Comment, error)
	Create(comment *models.Comment) error
	UpdateStatus(id uint, status string) (*models.Comment, error)
	Delete(id uint) error
}

type gormCommentStore struct {
	db *gorm.DB
}

// NewCommentStore returns a GORM-backed CommentStore.
func NewCommentStore(db *gorm.DB) CommentStore {
	return &gormCommentStore{db: db}
}

func (s *gormCommentStore) ListAdmin(f CommentFilter) (*CommentPage, error) {
	page, perPage := normalizePage(f.Page, f.PerPage)

	query := s.db.Model(&models.Comment{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("content LIKE ? OR author_name LIKE ? OR author_email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Preload("Post").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return &CommentPage{Items: comments, Pagination: paginate(page, perPage, total)}, nil
}

func (s *gormCommentStore) Stats() (ModerationStats, error) {
	var stats ModerationStats
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := s.db.Model(&models.Comment{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}
	for _, r := range rows {
		switch r.Status {
		case models.CommentStatusPending:
			stats.Pending = r.N
		case models.CommentStatusApproved:
			stats.Approved = r.N
		case models.CommentStatusSpam:
			stats.Spam = r.N
		}
	}
	return stats, nil
}

// Thread fetches every approved comment of the post in one query and groups
// replies under their parents in memory; only one level is ever rendered.
func (s *gormCommentStore) Thread(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Where("post_id = ?", postID).
		Where("status = ?", models.CommentStatusApproved).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return models.BuildCommentTree(comments), nil
}

func (s *gormCommentStore) ListForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (s *gormCommentStore) GetByID(id uint, withRelations bool) (*models.Comment, error) {
	var comment models.Comment
	query := s.db
	if withRelations {
		query = query.Preload("Post").Preload("Parent").Preload("Replies")
	}
	err := query.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *gormCommentStore) Create(comment *models.Comment) error {
	return s.db.Omit("Post", "Parent", "Replies").Create(comment).Error
}

func (s *gormCommentStore) UpdateStatus(id uint, status string) (*models.Comment, error) {
	comment, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(comment).Update("status", status).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and cascades to its direct replies; they are
// deleted, never orphaned or reparented.
func (s *gormCommentStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error
	})
}
