package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "token not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get token")
	}
	return &token, nil
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&token)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "token not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get token")
	}
	return &token, nil
}

// Replace stores token as the only token of its user
func (r *TokenRepository) Replace(ctx context.Context, token *models.AuthToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.AuthToken{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to clear token")
		}
		if err := tx.Omit("User").Create(token).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create token")
		}
		return nil
	})
}

// DeleteByUserID removes the user's token. Deleting a missing token is not an error.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete token")
	}
	return nil
}
