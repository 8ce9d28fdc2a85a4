package services

import (
	"context"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

type FavoriteService struct {
	favorites FavoriteStore
	ads       AdvertisementStore
}

func NewFavoriteService(favorites FavoriteStore, ads AdvertisementStore) *FavoriteService {
	return &FavoriteService{favorites: favorites, ads: ads}
}

// Add saves the advertisement for the caller. added is false when it was already saved.
func (s *FavoriteService) Add(ctx context.Context, p *policy.Principal, advertisementID uint) (bool, error) {
	if err := s.ensureAdvertisement(ctx, advertisementID); err != nil {
		return false, err
	}

	present, err := s.favorites.Contains(ctx, p.AccountID, advertisementID)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}
	if err := s.favorites.Add(ctx, p.AccountID, advertisementID); err != nil {
		return false, err
	}

	logger.Debug("Favorite added", "account_id", p.AccountID, "advertisement_id", advertisementID)
	return true, nil
}

func (s *FavoriteService) Remove(ctx context.Context, p *policy.Principal, advertisementID uint) error {
	if err := s.ensureAdvertisement(ctx, advertisementID); err != nil {
		return err
	}

	removed, err := s.favorites.Remove(ctx, p.AccountID, advertisementID)
	if err != nil {
		return err
	}
	if !removed {
		return errors.New(errors.ErrCodeBadRequest, "Advertisement not in favorites.")
	}

	logger.Debug("Favorite removed", "account_id", p.AccountID, "advertisement_id", advertisementID)
	return nil
}

// List returns the caller's saved advertisements that are approved.
func (s *FavoriteService) List(ctx context.Context, p *policy.Principal) ([]models.Advertisement, error) {
	return s.ads.List(ctx, repositories.AdvertisementFilter{
		ApprovedOnly: true,
		FavoritedBy:  p.AccountID,
	})
}

func (s *FavoriteService) ensureAdvertisement(ctx context.Context, id uint) error {
	exists, err := s.ads.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	return nil
}
