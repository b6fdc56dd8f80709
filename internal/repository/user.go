package repository

import (
	"context"
	"errors"

	"labook/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and friendships.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetFriendship(ctx context.Context, pair models.Friendship) (*models.Friendship, error)
	ToggleFriendship(ctx context.Context, pair models.Friendship) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user without checking for an existing email first; a
// uniqueness violation is reported as a conflict.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("'email' already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetFriendship returns the stored row for pair or nil. pair must come from models.NewFriendPair.
func (r *userRepository) GetFriendship(ctx context.Context, pair models.Friendship) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ?", pair.UserOneID, pair.UserTwoID).
		Take(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// ToggleFriendship removes the friendship for pair if present, otherwise creates it.
func (r *userRepository) ToggleFriendship(ctx context.Context, pair models.Friendship) (bool, error) {
	row := models.Friendship{UserOneID: pair.UserOneID, UserTwoID: pair.UserTwoID}
	friends, err := toggle(ctx, r.db, "users_friends", &models.Friendship{}, map[string]interface{}{
		"user_one_id": pair.UserOneID,
		"user_two_id": pair.UserTwoID,
	}, &row)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return friends, nil
}
