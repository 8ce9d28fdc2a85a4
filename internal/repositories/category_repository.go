package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list categories")
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	result := r.db.WithContext(ctx).First(&category, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get category")
	}
	return &category, nil
}

// FindByIDs returns the categories that exist among ids
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	categories := []models.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load categories")
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicate(err) {
			return errors.Validation(map[string]string{"slug": "category with this slug already exists."})
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create category")
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	result := r.db.WithContext(ctx).Model(category).Select("name", "slug").Updates(category)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return errors.Validation(map[string]string{"slug": "category with this slug already exists."})
		}
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	return nil
}
