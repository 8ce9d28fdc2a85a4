package services

import (
	"context"
	"encoding/json"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

// AdvertisementInput names the house an advertisement is created for or approved on.
type AdvertisementInput struct {
	HouseID uint `json:"house_id" validate:"required"`
}

func (in AdvertisementInput) Validate() error {
	return validateInput(in)
}

// AdvertisementService drives an advertisement from creation to approval and
// serves the public listing.
type AdvertisementService struct {
	ads    AdvertisementStore
	houses HouseStore
	cache  AdvertisementCache
}

func NewAdvertisementService(ads AdvertisementStore, houses HouseStore, cache AdvertisementCache) *AdvertisementService {
	return &AdvertisementService{ads: ads, houses: houses, cache: cache}
}

// Create advertises the caller's house. The house is marked advertised in the same transaction.
func (s *AdvertisementService) Create(ctx context.Context, p *policy.Principal, houseID uint) (*models.Advertisement, error) {
	house, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if house.OwnerID != p.AccountID {
		return nil, errors.New(errors.ErrCodeForbidden, "You are not the owner of this house.")
	}

	ad := &models.Advertisement{HouseID: house.ID}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	logger.Info("Advertisement created", "advertisement_id", ad.ID, "house_id", house.ID)
	return ad, nil
}

// Approve publishes the advertisement of houseID. Approval is one way.
func (s *AdvertisementService) Approve(ctx context.Context, p *policy.Principal, houseID uint) (*models.Advertisement, error) {
	if !policy.IsAdmin(p, "") {
		return nil, errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}

	ad, err := s.ads.Approve(ctx, houseID)
	if err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("Advertisement approved", "advertisement_id", ad.ID, "approved_by", p.UserID)
	return ad, nil
}

// ListApproved returns approved, unrented advertisements. Results are cached per category.
func (s *AdvertisementService) ListApproved(ctx context.Context, categoryID uint) ([]models.Advertisement, error) {
	if payload, err := s.cache.GetApproved(ctx, categoryID); err == nil {
		var ads []models.Advertisement
		if err := json.Unmarshal(payload, &ads); err == nil {
			return ads, nil
		}
		logger.Warn("Discarding unreadable advertisement cache entry", "category_id", categoryID)
	}

	ads, err := s.ads.List(ctx, repositories.AdvertisementFilter{
		ApprovedOnly: true,
		UnrentedOnly: true,
		CategoryID:   categoryID,
	})
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ads); err == nil {
		if err := s.cache.SetApproved(ctx, categoryID, payload); err != nil {
			logger.Warn("Failed to cache advertisements", "category_id", categoryID, "error", err)
		}
	}
	return ads, nil
}

// Get returns a publicly listed advertisement.
func (s *AdvertisementService) Get(ctx context.Context, id uint) (*models.Advertisement, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ad.Listed() {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	return ad, nil
}

// ListAll returns every advertisement regardless of state. Staff only.
func (s *AdvertisementService) ListAll(ctx context.Context, p *policy.Principal) ([]models.Advertisement, error) {
	if !policy.IsAdmin(p, "") {
		return nil, errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}
	return s.ads.List(ctx, repositories.AdvertisementFilter{})
}
