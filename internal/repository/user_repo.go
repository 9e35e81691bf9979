package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
)

// ErrDuplicateEmail is returned by Create when the unique index on users.email fires.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository is the credential store. Emails are stored normalised
// (trimmed, lower-case) by the caller, so the unique index is case-insensitive.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user. Uniqueness is decided by the database, not by a prior read.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByEmail only finds accounts allowed to authenticate.
func (r *UserRepository) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ? AND active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// UpdateSubscription writes all subscription fields in a single UPDATE of an
// active user. It reports false when no such user exists.
func (r *UserRepository) UpdateSubscription(ctx context.Context, id int64, subType model.SubscriptionType, start, expiry time.Time) (bool, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&model.User{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]interface{}{
			"subscription_type":   subType,
			"subscription_start":  start,
			"subscription_expiry": expiry,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// MySQL 对值未变化的行返回 0，需要区分"不存在"与"未变化"
	var count int64
	if err := db.Model(&model.User{}).Where("id = ? AND active = ?", id, true).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// SetActive toggles the soft-delete flag; users are never hard-deleted.
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&model.User{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
