package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListByCompletedCount lists users ordered by completion count, highest first.
// Ties break on name so the ordering is stable across requests.
func (r *GormUserRepository) ListByCompletedCount(limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.
		Order("completed_count DESC, name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
