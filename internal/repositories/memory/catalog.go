package memory

import (
	"context"
	"sort"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	return &c, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Category{}
	seen := map[uint]bool{}
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoryRepository) slugTaken(slug string, except uint) bool {
	for _, c := range r.s.categories {
		if c.Slug == slug && c.ID != except {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken(category.Slug, 0) {
		return errors.Validation(map[string]string{"slug": "category with this slug already exists."})
	}
	category.ID = r.s.nextID("categories")
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[category.ID]; !ok {
		return errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	if r.slugTaken(category.Slug, category.ID) {
		return errors.Validation(map[string]string{"slug": "category with this slug already exists."})
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "Category not found.")
	}
	delete(r.s.categories, id)
	for houseID, ids := range r.s.houseCategories {
		kept := ids[:0]
		for _, cid := range ids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		r.s.houseCategories[houseID] = kept
	}
	return nil
}

type HouseRepository struct {
	s *Store
}

func (r *HouseRepository) List(ctx context.Context, filter repositories.HouseFilter) ([]models.House, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.House{}
	for id, h := range r.s.houses {
		if filter.OwnerID != 0 && h.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != 0 && !r.s.houseHasCategory(id, filter.CategoryID) {
			continue
		}
		detailed, _ := r.s.houseDetails(id)
		out = append(out, detailed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *HouseRepository) GetByID(ctx context.Context, id uint) (*models.House, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.houseDetails(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	return &h, nil
}

func (r *HouseRepository) Create(ctx context.Context, house *models.House) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	house.ID = r.s.nextID("houses")
	house.CreatedAt, house.UpdatedAt = now, now

	stored := *house
	stored.Owner = nil
	stored.Categories = nil
	r.s.houses[house.ID] = stored
	r.s.houseCategories[house.ID] = house.CategoryIDs()
	return nil
}

func (r *HouseRepository) Update(ctx context.Context, house *models.House, categories []models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.houses[house.ID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	current.Title = house.Title
	current.Description = house.Description
	current.Location = house.Location
	current.Image = house.Image
	current.Price = house.Price
	current.UpdatedAt = r.s.now()
	r.s.houses[house.ID] = current
	house.UpdatedAt = current.UpdatedAt

	if categories != nil {
		ids := make([]uint, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		r.s.houseCategories[house.ID] = ids
		house.Categories = categories
	}
	return nil
}

func (r *HouseRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.houses[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "House not found.")
	}
	delete(r.s.houses, id)
	delete(r.s.houseCategories, id)
	for adID, ad := range r.s.ads {
		if ad.HouseID == id {
			r.s.deleteAdvertisement(adID)
		}
	}
	return nil
}
