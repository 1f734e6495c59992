package repository

import (
	"context"

	"gorm.io/gorm"

	"razzrel/internal/model"
)

// ProfileFields are the user-editable profile columns. A nil ProfilePicture
// leaves the stored picture untouched.
type ProfileFields struct {
	FullName       string
	Email          string
	ContactNo      string
	ProfilePicture *string
}

// UserRepository defines credential store operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, fields ProfileFields) (*model.User, error)
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context) ([]model.User, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user. A taken email surfaces as gorm.ErrDuplicatedKey from
// the unique index, so concurrent registrations cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return normalize(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes the profile columns and returns the stored row.
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, fields ProfileFields) (*model.User, error) {
	updates := map[string]interface{}{
		"full_name":  fields.FullName,
		"email":      fields.Email,
		"contact_no": fields.ContactNo,
	}
	if fields.ProfilePicture != nil {
		updates["profile_picture"] = *fields.ProfilePicture
	}

	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return normalize(res.Error)
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListPage(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
