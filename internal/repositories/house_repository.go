package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
)

type HouseRepository struct {
	db *gorm.DB
}

func NewHouseRepository(db *gorm.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

func (r *HouseRepository) withDetails(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Owner.User").Preload("Categories")
}

// List returns houses matching filter, newest first
func (r *HouseRepository) List(ctx context.Context, filter HouseFilter) ([]models.House, error) {
	query := r.withDetails(r.db.WithContext(ctx))
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("id IN (?)",
			r.db.Table("house_categories").Select("house_id").Where("category_id = ?", filter.CategoryID))
	}

	var houses []models.House
	if err := query.Order("created_at DESC, id DESC").Find(&houses).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list houses")
	}
	return houses, nil
}

func (r *HouseRepository) GetByID(ctx context.Context, id uint) (*models.House, error) {
	var house models.House
	result := r.withDetails(r.db.WithContext(ctx)).First(&house, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get house")
	}
	return &house, nil
}

// Create stores house and links the categories already set on it
func (r *HouseRepository) Create(ctx context.Context, house *models.House) error {
	if err := r.db.WithContext(ctx).Omit("Owner", "Categories.*").Create(house).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create house")
	}
	return nil
}

// Update saves the scalar fields of house. A non-nil categories slice replaces the links.
func (r *HouseRepository) Update(ctx context.Context, house *models.House, categories []models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(house).
			Select("title", "description", "location", "image", "price", "updated_at").
			Updates(house)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update house")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "House not found.")
		}

		if categories != nil {
			if err := tx.Model(house).Omit("Categories.*").Association("Categories").Replace(categories); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update house categories")
			}
			house.Categories = categories
		}
		return nil
	})
}

func (r *HouseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Categories").Delete(&models.House{ID: id})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete house")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	return nil
}
