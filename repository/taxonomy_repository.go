package repository

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/models"
)

// TaxonomyFilter narrows category/tag listings by name substring.
type TaxonomyFilter struct {
	Search  string
	Page    int
	PerPage int
}

// CategoryPage is one page of the admin category listing.
type CategoryPage struct {
	Items      []models.Category
	Pagination Pagination
}

// TagPage is one page of the admin tag listing.
type TagPage struct {
	Items      []models.Tag
	Pagination Pagination
}

// CategoryStore is the persistence boundary for categories.
type CategoryStore interface {
	List(f TaxonomyFilter) (*CategoryPage, error)
	// All returns every category with its post count, for sidebar/filter UI.
	All() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	// Delete removes the category and cascades to its posts (and their
	// comments and tag associations).
	Delete(id uint) error
	SlugExists(slug string, excludeID uint) (bool, error)
}

// TagStore is the persistence boundary for tags.
type TagStore interface {
	List(f TaxonomyFilter) (*TagPage, error)
	All() ([]models.Tag, error)
	// GetByID loads the tag and its most recent posts (up to recentPosts).
	GetByID(id uint, recentPosts int) (*models.Tag, []models.Post, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	NameExists(name string, excludeID uint) (bool, error)
	SlugExists(slug string, excludeID uint) (bool, error)
}

type gormCategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore returns a GORM-backed CategoryStore.
func NewCategoryStore(db *gorm.DB) CategoryStore {
	return &gormCategoryStore{db: db}
}

func (s *gormCategoryStore) List(f TaxonomyFilter) (*CategoryPage, error) {
	page, perPage := normalizePage(f.Page, f.PerPage)

	query := s.db.Model(&models.Category{})
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var categories []models.Category
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillPostCounts(categories); err != nil {
		return nil, err
	}

	return &CategoryPage{Items: categories, Pagination: paginate(page, perPage, total)}, nil
}

func (s *gormCategoryStore) All() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if err := s.fillPostCounts(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *gormCategoryStore) fillPostCounts(categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	type row struct {
		CategoryID uint
		N          int64
	}
	var rows []row
	err := s.db.Model(&models.Post{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.N
	}
	for i := range categories {
		categories[i].PostsCount = counts[categories[i].ID]
	}
	return nil
}

func (s *gormCategoryStore) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *gormCategoryStore) Create(category *models.Category) error {
	return s.db.Omit("Posts").Create(category).Error
}

func (s *gormCategoryStore) Update(category *models.Category) error {
	return s.db.Omit("Posts").Save(category).Error
}

func (s *gormCategoryStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("category_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Table("post_tags").Where("post_id IN ?", postIDs).Delete(nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Post{}, postIDs).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormCategoryStore) SlugExists(slug string, excludeID uint) (bool, error) {
	return slugExists(s.db, &models.Category{}, "slug", slug, excludeID)
}

type gormTagStore struct {
	db *gorm.DB
}

// NewTagStore returns a GORM-backed TagStore.
func NewTagStore(db *gorm.DB) TagStore {
	return &gormTagStore{db: db}
}

func (s *gormTagStore) List(f TaxonomyFilter) (*TagPage, error) {
	page, perPage := normalizePage(f.Page, f.PerPage)

	query := s.db.Model(&models.Tag{})
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var tags []models.Tag
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillPostCounts(tags); err != nil {
		return nil, err
	}

	return &TagPage{Items: tags, Pagination: paginate(page, perPage, total)}, nil
}

func (s *gormTagStore) All() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	if err := s.fillPostCounts(tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *gormTagStore) fillPostCounts(tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	type row struct {
		TagID uint
		N     int64
	}
	var rows []row
	err := s.db.Table("post_tags").
		Select("tag_id, COUNT(*) AS n").
		Where("tag_id IN ?", ids).
		Group("tag_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.TagID] = r.N
	}
	for i := range tags {
		tags[i].PostsCount = counts[tags[i].ID]
	}
	return nil
}

func (s *gormTagStore) GetByID(id uint, recentPosts int) (*models.Tag, []models.Post, error) {
	var tag models.Tag
	err := s.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var posts []models.Post
	if recentPosts > 0 {
		err = s.db.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", id).
			Order("posts.created_at DESC").
			Limit(recentPosts).
			Preload("Author").
			Find(&posts).Error
		if err != nil {
			return nil, nil, err
		}
	}
	return &tag, posts, nil
}

func (s *gormTagStore) Create(tag *models.Tag) error {
	return s.db.Omit("Posts").Create(tag).Error
}

func (s *gormTagStore) Update(tag *models.Tag) error {
	return s.db.Omit("Posts").Save(tag).Error
}

// Delete removes the tag and its post associations; posts themselves are kept.
func (s *gormTagStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Table("post_tags").Where("tag_id = ?", id).Delete(nil).Error
	})
}

func (s *gormTagStore) NameExists(name string, excludeID uint) (bool, error) {
	return slugExists(s.db, &models.Tag{}, "name", name, excludeID)
}

func (s *gormTagStore) SlugExists(slug string, excludeID uint) (bool, error) {
	return slugExists(s.db, &models.Tag{}, "slug", slug, excludeID)
}

func slugExists(db *gorm.DB, model interface{}, column, value string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
