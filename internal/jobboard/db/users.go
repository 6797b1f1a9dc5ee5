package db

import (
	"context"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return e.ErrInvalidArguments
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmailOrMobile finds the user matching either credential key.
// At least one of email and mobile must be non-empty.
func (r *Repository) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	if email == "" && mobile == "" {
		return nil, e.ErrInvalidArguments
	}
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR mobile_number = ?", email, mobile).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *Repository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, e.ErrInvalidArguments
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Limit(1).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *Repository) UserExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	if mobile == "" {
		return false, e.ErrInvalidArguments
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("mobile_number = ?", mobile).
		Limit(1).
		Count(&count).Error
	return count > 0, translate(err)
}

// SaveUser persists the full user record. Used after the controller has
// merged a partial update into the loaded entity.
func (r *Repository) SaveUser(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == uuid.Nil {
		return e.ErrInvalidArguments
	}
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

// SetUserStatus flips the presence status, e.g. to online on sign-in.
func (r *Repository) SetUserStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	if id == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotUpdated
	}
	return nil
}

// SetUserPassword overwrites the stored password hash.
func (r *Repository) SetUserPassword(ctx context.Context, id uuid.UUID, hash string) error {
	if id == uuid.Nil || hash == "" {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotUpdated
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// FindUsersByRecoveryEmail returns every account registered with the given
// recovery email. An empty result is not an error; the caller decides.
func (r *Repository) FindUsersByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.User, error) {
	if recoveryEmail == "" {
		return nil, e.ErrInvalidArguments
	}
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("recovery_email = ?", recoveryEmail).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
