package repository

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/models"
)

// UserStore is the persistence boundary for users. Authentication itself is a
// collaborator concern; this store only resolves identities.
type UserStore interface {
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
}

type gormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns a GORM-backed UserStore.
func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) Create(user *models.User) error {
	return s.db.Omit("Posts").Create(user).Error
}
