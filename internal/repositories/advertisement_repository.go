package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdvertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

func (r *AdvertisementRepository) withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("House.Owner.User").
		Preload("House.Categories").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Reviews.User.User")
}

// Create stores ad and marks its house advertised in one transaction
func (r *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ad).Error; err != nil {
			if isDuplicate(err) {
				return errors.New(errors.ErrCodeAlreadyExists, "Advertisement for this house already exists.")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create advertisement")
		}

		result := tx.Model(&models.House{}).Where("id = ?", ad.HouseID).UpdateColumn("is_advertised", true)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to mark house advertised")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "House not found.")
		}
		return nil
	})
}

func (r *AdvertisementRepository) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	result := r.withDetails(r.db.WithContext(ctx)).First(&ad, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get advertisement")
	}
	return &ad, nil
}

func (r *AdvertisementRepository) GetByHouseID(ctx context.Context, houseID uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	result := r.db.WithContext(ctx).Where("house_id = ?", houseID).First(&ad)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get advertisement")
	}
	return &ad, nil
}

func (r *AdvertisementRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Advertisement{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check advertisement")
	}
	return count > 0, nil
}

// Approve sets the approval flag of the advertisement of houseID
func (r *AdvertisementRepository) Approve(ctx context.Context, houseID uint) (*models.Advertisement, error) {
	result := r.db.WithContext(ctx).Model(&models.Advertisement{}).
		Where("house_id = ?", houseID).
		UpdateColumn("is_approved", true)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to approve advertisement")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	return r.GetByHouseID(ctx, houseID)
}

func (r *AdvertisementRepository) List(ctx context.Context, filter AdvertisementFilter) ([]models.Advertisement, error) {
	query := r.withDetails(r.db.WithContext(ctx)).Model(&models.Advertisement{})
	if filter.ApprovedOnly {
		query = query.Where("advertisements.is_approved = ?", true)
	}
	if filter.UnrentedOnly {
		query = query.Where("advertisements.is_rented = ?", false)
	}
	if filter.CategoryID != 0 {
		query = query.Where("advertisements.house_id IN (?)",
			r.db.Table("house_categories").Select("house_id").Where("category_id = ?", filter.CategoryID))
	}
	if filter.FavoritedBy != 0 {
		query = query.Where("advertisements.id IN (?)",
			r.db.Model(&models.Favorite{}).Select("advertisement_id").Where("account_id = ?", filter.FavoritedBy))
	}

	var ads []models.Advertisement
	if err := query.Order("advertisements.id ASC").Find(&ads).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list advertisements")
	}
	return ads, nil
}
