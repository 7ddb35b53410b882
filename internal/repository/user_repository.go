package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatquestbot/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Upsert creates the user or refreshes their identity fields. Only the
// fields that come from the chat platform are overwritten; warnings_count,
// is_banned and joined_at survive re-registration.
func (r *GormUserRepository) Upsert(user *models.User) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "is_operator"}),
		}).
		Create(user).Error
}

// FindByID finds a user by their platform id
func (r *GormUserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsBanned reports whether the user exists and is banned. Unknown users are
// not banned.
func (r *GormUserRepository) IsBanned(id int64) (bool, error) {
	user, err := r.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsBanned, nil
}
