package memory

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

type ReviewRepository struct {
	s *Store
}

func (r *ReviewRepository) List(ctx context.Context, advertisementID uint) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Review{}
	for _, review := range r.s.sortedReviews() {
		if advertisementID != 0 && review.AdvertisementID != advertisementID {
			continue
		}
		out = append(out, r.s.reviewDetails(review))
	}
	return out, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	detailed := r.s.reviewDetails(review)
	return &detailed, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ads[review.AdvertisementID]; !ok {
		return errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	review.ID = r.s.nextID("reviews")
	review.CreatedAt = r.s.now()
	stored := *review
	stored.User = nil
	stored.Advertisement = nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.reviews[review.ID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	current.Rating = review.Rating
	current.Text = review.Text
	r.s.reviews[review.ID] = current
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "Review not found.")
	}
	delete(r.s.reviews, id)
	return nil
}
