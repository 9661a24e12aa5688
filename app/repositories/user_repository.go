// Package repositories contains the persistence layer. Each repository
// wraps a *gorm.DB and exposes typed queries; services never touch SQL
// directly.
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	defer metrics.ObserveDBQuery("users.find_by_email", time.Now())

	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	defer metrics.ObserveDBQuery("users.find_by_id", time.Now())

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithPurchases loads a user together with their purchase rows.
func (r *UserRepository) FindByIDWithPurchases(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("ProductsBought").Preload("ProductsUploaded").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether an account with email already exists.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	defer metrics.ObserveDBQuery("users.create", time.Now())
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	defer metrics.ObserveDBQuery("users.update", time.Now())
	return r.db.Save(user).Error
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
