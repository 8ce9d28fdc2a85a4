package services

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/security"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

type ReviewInput struct {
	Advertisement uint   `json:"advertisement" validate:"required"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text          string `json:"text" validate:"required"`
}

type ReviewUpdateInput struct {
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Text   *string `json:"text"`
}

type ReviewService struct {
	reviews ReviewStore
	ads     AdvertisementStore
	cache   AdvertisementCache
}

func NewReviewService(reviews ReviewStore, ads AdvertisementStore, cache AdvertisementCache) *ReviewService {
	return &ReviewService{reviews: reviews, ads: ads, cache: cache}
}

// List returns reviews of one advertisement, or all of them when advertisementID is 0.
func (s *ReviewService) List(ctx context.Context, advertisementID uint) ([]models.Review, error) {
	return s.reviews.List(ctx, advertisementID)
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// Create attaches a review by the caller. Repeated reviews of one advertisement are allowed.
func (s *ReviewService) Create(ctx context.Context, p *policy.Principal, in ReviewInput) (*models.Review, error) {
	in.Text = security.SanitizeText(in.Text)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	exists, err := s.ads.Exists(ctx, in.Advertisement)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}

	review := &models.Review{
		AdvertisementID: in.Advertisement,
		UserID:          p.AccountID,
		Rating:          in.Rating,
		Text:            in.Text,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("Review created", "review_id", review.ID, "advertisement_id", review.AdvertisementID)
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, p *policy.Principal, id uint, in ReviewUpdateInput) (*models.Review, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.AuthoredReview(p, review) {
		return nil, errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}

	if in.Rating != nil {
		review.Rating = *in.Rating
	}
	if in.Text != nil {
		text := security.SanitizeText(*in.Text)
		if text == "" {
			return nil, errors.Validation(map[string]string{"text": "This field may not be blank."})
		}
		review.Text = text
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)
	return s.reviews.GetByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, p *policy.Principal, id uint) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.AuthoredReview(p, review) {
		return errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("Review deleted", "review_id", id)
	return nil
}
