package controllers

import (
	"github.com/stretchr/testify/mock"

	"inkwell/models"
	"inkwell/repository"
)

type mockPostStore struct{ mock.Mock }

func (m *mockPostStore) List(f repository.PostFilter, loads repository.LoadOptions) (*repository.PostPage, error) {
	args := m.Called(f, loads)
	page, _ := args.Get(0).(*repository.PostPage)
	return page, args.Error(1)
}

func (m *mockPostStore) GetByID(id uint, loads repository.LoadOptions) (*models.Post, error) {
	args := m.Called(id, loads)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostStore) GetBySlug(slug string, loads repository.LoadOptions) (*models.Post, error) {
	args := m.Called(slug, loads)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostStore) Create(post *models.Post, tagIDs []uint) error {
	return m.Called(post, tagIDs).Error(0)
}

func (m *mockPostStore) Update(post *models.Post, tagIDs []uint, syncTags bool) error {
	return m.Called(post, tagIDs, syncTags).Error(0)
}

func (m *mockPostStore) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockPostStore) IncrementViews(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockPostStore) Related(postID, categoryID uint, limit int) ([]models.Post, error) {
	args := m.Called(postID, categoryID, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *mockPostStore) SlugExists(slug string, excludeID uint) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockCommentStore struct{ mock.Mock }

func (m *mockCommentStore) ListAdmin(f repository.CommentFilter) (*repository.CommentPage, error) {
	args := m.Called(f)
	page, _ := args.Get(0).(*repository.CommentPage)
	return page, args.Error(1)
}

func (m *mockCommentStore) Stats() (repository.ModerationStats, error) {
	args := m.Called()
	stats, _ := args.Get(0).(repository.ModerationStats)
	return stats, args.Error(1)
}

func (m *mockCommentStore) Thread(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentStore) ListForPost(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentStore) GetByID(id uint, withRelations bool) (*models.Comment, error) {
	args := m.Called(id, withRelations)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentStore) Create(comment *models.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentStore) UpdateStatus(id uint, status string) (*models.Comment, error) {
	args := m.Called(id, status)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentStore) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) List(f repository.TaxonomyFilter) (*repository.CategoryPage, error) {
	args := m.Called(f)
	page, _ := args.Get(0).(*repository.CategoryPage)
	return page, args.Error(1)
}

func (m *mockCategoryStore) All() ([]models.Category, error) {
	args := m.Called()
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryStore) GetByID(id uint) (*models.Category, error) {
	args := m.Called(id)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryStore) Create(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryStore) Update(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryStore) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockCategoryStore) SlugExists(slug string, excludeID uint) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockTagStore struct{ mock.Mock }

func (m *mockTagStore) List(f repository.TaxonomyFilter) (*repository.TagPage, error) {
	args := m.Called(f)
	page, _ := args.Get(0).(*repository.TagPage)
	return page, args.Error(1)
}

func (m *mockTagStore) All() ([]models.Tag, error) {
	args := m.Called()
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *mockTagStore) GetByID(id uint, recentPosts int) (*models.Tag, []models.Post, error) {
	args := m.Called(id, recentPosts)
	tag, _ := args.Get(0).(*models.Tag)
	posts, _ := args.Get(1).([]models.Post)
	return tag, posts, args.Error(2)
}

func (m *mockTagStore) Create(tag *models.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagStore) Update(tag *models.Tag) error {
	return m.Called(tag).Error(0)
}

func (m *mockTagStore) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockTagStore) NameExists(name string, excludeID uint) (bool, error) {
	args := m.Called(name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTagStore) SlugExists(slug string, excludeID uint) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockStatsStore struct{ mock.Mock }

func (m *mockStatsStore) Site() (*repository.SiteStats, error) {
	args := m.Called()
	stats, _ := args.Get(0).(*repository.SiteStats)
	return stats, args.Error(1)
}

func (m *mockStatsStore) PublishedPostCount() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) Create(user *models.User) error {
	return m.Called(user).Error(0)
}
