package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		return nil, translate(err, domain.ErrUserNotFound, nil)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err, domain.ErrUserNotFound, nil)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := userRecord{Username: user.Username, HashedPassword: user.PasswordHash}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err, nil, domain.ErrUserExists)
	}
	return rec.toDomain(), nil
}
