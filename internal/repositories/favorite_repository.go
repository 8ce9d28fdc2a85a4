package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Contains(ctx context.Context, accountID, advertisementID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("account_id = ? AND advertisement_id = ?", accountID, advertisementID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check favorite")
	}
	return count > 0, nil
}

// Add links the advertisement to the account. Re-adding is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, accountID, advertisementID uint) error {
	favorite := &models.Favorite{AccountID: accountID, AdvertisementID: advertisementID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(favorite).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add favorite")
	}
	return nil
}

// Remove unlinks the advertisement and reports whether a link existed
func (r *FavoriteRepository) Remove(ctx context.Context, accountID, advertisementID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND advertisement_id = ?", accountID, advertisementID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove favorite")
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) ListIDs(ctx context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("account_id = ?", accountID).
		Order("advertisement_id ASC").
		Pluck("advertisement_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list favorites")
	}
	return ids, nil
}
