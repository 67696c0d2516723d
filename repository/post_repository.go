package repository

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/models"
)

// PostFilter narrows a post listing. Distinct filters are AND-combined; the
// search term is OR-matched against title, content and excerpt.
type PostFilter struct {
	Status   string // exact match; ignored when Public is set
	Type     string // exact match
	Category string // category slug
	Tag      string // tag slug
	Search   string
	Page     int
	PerPage  int

	// Public restricts the listing to published posts ordered by
	// published_at descending. Admin listings leave it unset and order by
	// creation time descending.
	Public bool
}

// PostPage is one page of a filtered post listing.
type PostPage struct {
	Items      []models.Post
	Pagination Pagination
}

// PostStore is the persistence boundary for posts.
type PostStore interface {
	List(f PostFilter, loads LoadOptions) (*PostPage, error)
	GetByID(id uint, loads LoadOptions) (*models.Post, error)
	GetBySlug(slug string, loads LoadOptions) (*models.Post, error)
	Create(post *models.Post, tagIDs []uint) error
	// Update persists post and, when syncTags is set, replaces its tag set
	// with tagIDs in the same transaction.
	Update(post *models.Post, tagIDs []uint, syncTags bool) error
	Delete(id uint) error
	IncrementViews(id uint) error
	Related(postID, categoryID uint, limit int) ([]models.Post, error)
	SlugExists(slug string, excludeID uint) (bool, error)
}

type gormPostStore struct {
	db *gorm.DB
}

// NewPostStore returns a GORM-backed PostStore.
func NewPostStore(db *gorm.DB) PostStore {
	return &gormPostStore{db: db}
}

func (s *gormPostStore) List(f PostFilter, loads LoadOptions) (*PostPage, error) {
	page, perPage := normalizePage(f.Page, f.PerPage)

	query := s.db.Model(&models.Post{})
	if f.Public {
		query = query.Where("posts.status = ?", models.PostStatusPublished)
	} else if f.Status != "" {
		query = query.Where("posts.status = ?", f.Status)
	}
	if f.Type != "" {
		query = query.Where("posts.type = ?", f.Type)
	}
	if f.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", f.Category)
	}
	if f.Tag != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", f.Tag)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("posts.title LIKE ? OR posts.content LIKE ? OR posts.excerpt LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, err
	}

	if f.Public {
		query = query.Order("posts.published_at DESC")
	} else {
		query = query.Order("posts.created_at DESC")
	}

	var posts []models.Post
	err := applyLoads(query, loads).
		Distinct("posts.*").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{Items: posts, Pagination: paginate(page, perPage, total)}, nil
}

func (s *gormPostStore) GetByID(id uint, loads LoadOptions) (*models.Post, error) {
	var post models.Post
	err := applyLoads(s.db, loads).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormPostStore) GetBySlug(slug string, loads LoadOptions) (*models.Post, error) {
	var post models.Post
	err := applyLoads(s.db, loads).Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormPostStore) Create(post *models.Post, tagIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Comments", "Author", "Category").Create(post).Error; err != nil {
			return err
		}
		return syncTags(tx, post, tagIDs)
	})
}

func (s *gormPostStore) Update(post *models.Post, tagIDs []uint, doSync bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Comments", "Author", "Category").Save(post).Error; err != nil {
			return err
		}
		if doSync {
			return syncTags(tx, post, tagIDs)
		}
		return nil
	})
}

// syncTags replaces the post's tag set with tagIDs, applying only the delta so
// old and new tags are never attached at the same time outside the
// transaction. Every referenced id must exist.
func syncTags(tx *gorm.DB, post *models.Post, tagIDs []uint) error {
	var found int64
	if len(tagIDs) > 0 {
		if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(tagIDs)) {
			return ErrUnknownTag
		}
	}

	var current []uint
	if err := tx.Table("post_tags").Where("post_id = ?", post.ID).Pluck("tag_id", &current).Error; err != nil {
		return err
	}

	add, remove := models.DiffTagIDs(current, tagIDs)
	if len(add) > 0 {
		tags := make([]models.Tag, 0, len(add))
		for _, id := range add {
			tags = append(tags, models.Tag{ID: id})
		}
		if err := tx.Model(post).Association("Tags").Append(&tags); err != nil {
			return err
		}
	}
	if len(remove) > 0 {
		if err := tx.Table("post_tags").Where("post_id = ? AND tag_id IN ?", post.ID, remove).Delete(nil).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a post together with its comments and tag associations.
func (s *gormPostStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Table("post_tags").Where("post_id = ?", id).Delete(nil).Error
	})
}

// IncrementViews bumps the view counter atomically in the database; the read
// that renders the page never carries this mutation.
func (s *gormPostStore) IncrementViews(id uint) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Related returns up to limit published posts from the same category,
// excluding the post itself, newest first with id as the deterministic
// tiebreak. No fallback to other categories.
func (s *gormPostStore) Related(postID, categoryID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.
		Where("status = ?", models.PostStatusPublished).
		Where("category_id = ?", categoryID).
		Where("id != ?", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Author").
		Preload("Category").
		Find(&posts).Error
	return posts, err
}

func (s *gormPostStore) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyLoads(query *gorm.DB, loads LoadOptions) *gorm.DB {
	if loads.Author {
		query = query.Preload("Author")
	}
	if loads.Category {
		query = query.Preload("Category")
	}
	if loads.Tags {
		query = query.Preload("Tags")
	}
	return query
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}
	return page, perPage
}
