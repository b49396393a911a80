package admin

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		IsAdmin(ctx context.Context, userID string) (bool, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("role").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}
