package memory

import (
	"context"
	"sort"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

type AdvertisementRepository struct {
	s *Store
}

func (r *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	house, ok := r.s.houses[ad.HouseID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	for _, existing := range r.s.ads {
		if existing.HouseID == ad.HouseID {
			return errors.New(errors.ErrCodeAlreadyExists, "Advertisement for this house already exists.")
		}
	}

	ad.ID = r.s.nextID("advertisements")
	ad.CreatedAt = r.s.now()
	stored := *ad
	stored.House = nil
	stored.Reviews = nil
	r.s.ads[ad.ID] = stored

	house.IsAdvertised = true
	r.s.houses[house.ID] = house
	return nil
}

func (r *AdvertisementRepository) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ad, ok := r.s.adDetails(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
	}
	return &ad, nil
}

func (r *AdvertisementRepository) GetByHouseID(ctx context.Context, houseID uint) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ad := range r.s.ads {
		if ad.HouseID == houseID {
			return &ad, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
}

func (r *AdvertisementRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.ads[id]
	return ok, nil
}

func (r *AdvertisementRepository) Approve(ctx context.Context, houseID uint) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, ad := range r.s.ads {
		if ad.HouseID == houseID {
			ad.IsApproved = true
			r.s.ads[id] = ad
			return &ad, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "Advertisement not found.")
}

func (r *AdvertisementRepository) List(ctx context.Context, filter repositories.AdvertisementFilter) ([]models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Advertisement{}
	for id, ad := range r.s.ads {
		if filter.ApprovedOnly && !ad.IsApproved {
			continue
		}
		if filter.UnrentedOnly && ad.IsRented {
			continue
		}
		if filter.CategoryID != 0 && !r.s.houseHasCategory(ad.HouseID, filter.CategoryID) {
			continue
		}
		if filter.FavoritedBy != 0 {
			if _, ok := r.s.favorites[favoriteKey{filter.FavoritedBy, id}]; !ok {
				continue
			}
		}
		detailed, _ := r.s.adDetails(id)
		out = append(out, detailed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type FavoriteRepository struct {
	s *Store
}

func (r *FavoriteRepository) Contains(ctx context.Context, accountID, advertisementID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.favorites[favoriteKey{accountID, advertisementID}]
	return ok, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, accountID, advertisementID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := favoriteKey{accountID, advertisementID}
	if _, ok := r.s.favorites[key]; !ok {
		r.s.favorites[key] = r.s.now()
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, accountID, advertisementID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := favoriteKey{accountID, advertisementID}
	if _, ok := r.s.favorites[key]; !ok {
		return false, nil
	}
	delete(r.s.favorites, key)
	return true, nil
}

func (r *FavoriteRepository) ListIDs(ctx context.Context, accountID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := []uint{}
	for k := range r.s.favorites {
		if k.accountID == accountID {
			ids = append(ids, k.advertisementID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
