package services

import (
	"context"
	"strings"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/security"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/utils"
	"github.com/shopspring/decimal"
)

type CategoryInput struct {
	Name *string `json:"name" validate:"omitempty,max=30"`
	Slug *string `json:"slug" validate:"omitempty,max=40"`
}

// HouseInput is a create or partial update payload for a house.
type HouseInput struct {
	Title       *string          `json:"title" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	Location    *string          `json:"location" validate:"omitempty,max=100"`
	Image       *string          `json:"image" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	CategoryIDs *[]uint          `json:"category_ids"`
}

// CatalogService manages categories and houses.
type CatalogService struct {
	categories CategoryStore
	houses     HouseStore
	cache      AdvertisementCache
}

func NewCatalogService(categories CategoryStore, houses HouseStore, cache AdvertisementCache) *CatalogService {
	return &CatalogService{categories: categories, houses: houses, cache: cache}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := required(map[string]bool{"name": in.Name != nil && strings.TrimSpace(*in.Name) != ""}); err != nil {
		return nil, err
	}

	category := &models.Category{Name: utils.CollapseSpaces(*in.Name)}
	category.Slug = categorySlug(in.Slug, category.Name)
	if category.Slug == "" {
		return nil, errors.Validation(map[string]string{"slug": "Enter a valid slug."})
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := utils.CollapseSpaces(*in.Name)
		if name == "" {
			return nil, errors.Validation(map[string]string{"name": "This field may not be blank."})
		}
		category.Name = name
	}
	if in.Slug != nil {
		category.Slug = utils.Slugify(*in.Slug)
		if category.Slug == "" {
			return nil, errors.Validation(map[string]string{"slug": "Enter a valid slug."})
		}
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	invalidateListings(ctx, s.cache)
	logger.Info("Category deleted", "category_id", id)
	return nil
}

func categorySlug(slug *string, name string) string {
	if slug != nil && strings.TrimSpace(*slug) != "" {
		return utils.Slugify(*slug)
	}
	return utils.Slugify(name)
}

// ListHouses returns every house, narrowed to one category when categoryID is set.
func (s *CatalogService) ListHouses(ctx context.Context, categoryID uint) ([]models.House, error) {
	return s.houses.List(ctx, repositories.HouseFilter{CategoryID: categoryID})
}

// MyHouses returns the caller's houses.
func (s *CatalogService) MyHouses(ctx context.Context, p *policy.Principal) ([]models.House, error) {
	return s.houses.List(ctx, repositories.HouseFilter{OwnerID: p.AccountID})
}

func (s *CatalogService) GetHouse(ctx context.Context, id uint) (*models.House, error) {
	return s.houses.GetByID(ctx, id)
}

func (s *CatalogService) CreateHouse(ctx context.Context, p *policy.Principal, in HouseInput) (*models.House, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	err := required(map[string]bool{
		"title":       in.Title != nil && strings.TrimSpace(*in.Title) != "",
		"description": in.Description != nil && strings.TrimSpace(*in.Description) != "",
		"location":    in.Location != nil && strings.TrimSpace(*in.Location) != "",
		"price":       in.Price != nil,
	})
	if err != nil {
		return nil, err
	}
	if !models.ValidPrice(*in.Price) {
		return nil, invalidPrice()
	}

	house := &models.House{
		OwnerID:     p.AccountID,
		Title:       security.SanitizeText(*in.Title),
		Description: security.SanitizeText(*in.Description),
		Location:    security.SanitizeText(*in.Location),
		Image:       trimmedPtr(in.Image),
		Price:       *in.Price,
		Categories:  []models.Category{},
	}
	if in.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		house.Categories = categories
	}

	if err := s.houses.Create(ctx, house); err != nil {
		return nil, err
	}

	logger.Info("House created", "house_id", house.ID, "owner_id", house.OwnerID)
	return s.houses.GetByID(ctx, house.ID)
}

// UpdateHouse applies the fields present in in. Only the owner or staff may call it.
func (s *CatalogService) UpdateHouse(ctx context.Context, p *policy.Principal, id uint, in HouseInput) (*models.House, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	house, err := s.houses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.OwnsHouse(p, house) {
		return nil, errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}

	blank := map[string]string{}
	setText := func(field string, src *string, dst *string) {
		if src == nil {
			return
		}
		clean := security.SanitizeText(*src)
		if clean == "" {
			blank[field] = "This field may not be blank."
			return
		}
		*dst = clean
	}
	setText("title", in.Title, &house.Title)
	setText("description", in.Description, &house.Description)
	setText("location", in.Location, &house.Location)
	if len(blank) > 0 {
		return nil, errors.Validation(blank)
	}
	if in.Image != nil {
		house.Image = trimmedPtr(in.Image)
	}
	if in.Price != nil {
		if !models.ValidPrice(*in.Price) {
			return nil, invalidPrice()
		}
		house.Price = *in.Price
	}

	var categories []models.Category
	if in.CategoryIDs != nil {
		categories, err = s.resolveCategories(ctx, *in.CategoryIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.houses.Update(ctx, house, categories); err != nil {
		return nil, err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("House updated", "house_id", house.ID)
	return s.houses.GetByID(ctx, house.ID)
}

func (s *CatalogService) DeleteHouse(ctx context.Context, p *policy.Principal, id uint) error {
	house, err := s.houses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.OwnsHouse(p, house) {
		return errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action.")
	}
	if err := s.houses.Delete(ctx, id); err != nil {
		return err
	}
	invalidateListings(ctx, s.cache)

	logger.Info("House deleted", "house_id", id)
	return nil
}

func (s *CatalogService) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[uint]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, errors.Validation(map[string]string{
				"category_ids": "Invalid pk - object does not exist.",
			})
		}
	}
	return categories, nil
}

func invalidPrice() error {
	return errors.Validation(map[string]string{
		"price": "Ensure the price is not negative, has at most 2 decimal places and no more than 12 digits.",
	})
}
