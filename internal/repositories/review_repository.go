package repositories

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// List returns reviews, restricted to one advertisement when advertisementID is set
func (r *ReviewRepository) List(ctx context.Context, advertisementID uint) ([]models.Review, error) {
	query := r.db.WithContext(ctx).Preload("User.User")
	if advertisementID != 0 {
		query = query.Where("advertisement_id = ?", advertisementID)
	}

	var reviews []models.Review
	if err := query.Order("created_at ASC, id ASC").Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list reviews")
	}
	return reviews, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	result := r.db.WithContext(ctx).Preload("User.User").First(&review, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get review")
	}
	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create review")
	}
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(review).Omit(clause.Associations).Select("rating", "text").Updates(review)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	return nil
}
