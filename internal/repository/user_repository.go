package repository

import (
	"context"

	"gorm.io/gorm"

	"fotolab/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	RoleOf(ctx context.Context, userID uint) (string, error)
	Summary(ctx context.Context, id uint) (*model.UserSummary, error)
	List(ctx context.Context) ([]model.UserSummary, error)
	ListPaged(ctx context.Context, offset, limit int) ([]model.UserSummary, error)
	Count(ctx context.Context) (int64, error)
	UpdateCredentials(ctx context.Context, id uint, username, passwordHash string) error
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Omit("Role").Create(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleOf returns the role name of a user, or gorm.ErrRecordNotFound when the
// user or its role row is missing.
func (r *userRepository) RoleOf(ctx context.Context, userID uint) (string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Role{}).
		Joins("JOIN users ON users.role_id = roles.id").
		Where("users.id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return names[0], nil
}

func (r *userRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, roles.name AS role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Order("users.id")
}

func (r *userRepository) Summary(ctx context.Context, id uint) (*model.UserSummary, error) {
	var summaries []model.UserSummary
	if err := r.summaries(ctx).Where("users.id = ?", id).Limit(1).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &summaries[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	if err := r.summaries(ctx).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *userRepository) ListPaged(ctx context.Context, offset, limit int) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	if err := r.summaries(ctx).Offset(offset).Limit(limit).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepository) UpdateCredentials(ctx context.Context, id uint, username, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"username":      username,
			"password_hash": passwordHash,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a user together with everything the user owns.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		albums := tx.Model(&model.Album{}).Select("id").Where("user_id = ?", id)
		images := tx.Model(&model.Image{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("album_id IN (?) OR image_id IN (?)", albums, images).
			Delete(&model.AlbumImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id IN (?)", albums).Delete(&model.AlbumTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id IN (?)", images).Delete(&model.ImageTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Album{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Image{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
