// Package memory keeps every marketplace table in process memory. It backs
// `houserent serve --memory` and the service and handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
)

type favoriteKey struct {
	accountID       uint
	advertisementID uint
}

// Store holds the tables. All access goes through the typed views it hands out.
type Store struct {
	mu  sync.Mutex
	seq map[string]uint

	users           map[uint]models.User
	accounts        map[uint]models.Account
	tokens          map[string]models.AuthToken
	categories      map[uint]models.Category
	houses          map[uint]models.House
	houseCategories map[uint][]uint
	ads             map[uint]models.Advertisement
	requests        map[uint]models.RentRequest
	reviews         map[uint]models.Review
	favorites       map[favoriteKey]time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		seq:             map[string]uint{},
		users:           map[uint]models.User{},
		accounts:        map[uint]models.Account{},
		tokens:          map[string]models.AuthToken{},
		categories:      map[uint]models.Category{},
		houses:          map[uint]models.House{},
		houseCategories: map[uint][]uint{},
		ads:             map[uint]models.Advertisement{},
		requests:        map[uint]models.RentRequest{},
		reviews:         map[uint]models.Review{},
		favorites:       map[favoriteKey]time.Time{},
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository                   { return &UserRepository{s: s} }
func (s *Store) Tokens() *TokenRepository                 { return &TokenRepository{s: s} }
func (s *Store) Categories() *CategoryRepository          { return &CategoryRepository{s: s} }
func (s *Store) Houses() *HouseRepository                 { return &HouseRepository{s: s} }
func (s *Store) Advertisements() *AdvertisementRepository { return &AdvertisementRepository{s: s} }
func (s *Store) Favorites() *FavoriteRepository           { return &FavoriteRepository{s: s} }
func (s *Store) Rentals() *RentalLedger                   { return &RentalLedger{s: s} }
func (s *Store) Reviews() *ReviewRepository               { return &ReviewRepository{s: s} }

func (s *Store) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

// The helpers below expect s.mu to be held.

func (s *Store) accountByUserID(userID uint) (models.Account, bool) {
	for _, a := range s.accounts {
		if a.UserID == userID {
			return a, true
		}
	}
	return models.Account{}, false
}

func (s *Store) accountWithUser(id uint) *models.Account {
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	a.User = s.users[a.UserID]
	return &a
}

func (s *Store) houseDetails(id uint) (models.House, bool) {
	h, ok := s.houses[id]
	if !ok {
		return h, false
	}
	h.Owner = s.accountWithUser(h.OwnerID)
	h.Categories = []models.Category{}
	for _, cid := range s.houseCategories[id] {
		if c, ok := s.categories[cid]; ok {
			h.Categories = append(h.Categories, c)
		}
	}
	sort.Slice(h.Categories, func(i, j int) bool { return h.Categories[i].ID < h.Categories[j].ID })
	return h, true
}

func (s *Store) reviewDetails(r models.Review) models.Review {
	r.User = s.accountWithUser(r.UserID)
	return r
}

func (s *Store) adDetails(id uint) (models.Advertisement, bool) {
	ad, ok := s.ads[id]
	if !ok {
		return ad, false
	}
	if h, ok := s.houseDetails(ad.HouseID); ok {
		ad.House = &h
	}
	ad.Reviews = []models.Review{}
	for _, r := range s.sortedReviews() {
		if r.AdvertisementID == id {
			ad.Reviews = append(ad.Reviews, s.reviewDetails(r))
		}
	}
	return ad, true
}

func (s *Store) sortedReviews() []models.Review {
	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) houseHasCategory(houseID, categoryID uint) bool {
	for _, cid := range s.houseCategories[houseID] {
		if cid == categoryID {
			return true
		}
	}
	return false
}

// deleteAdvertisement cascades like the advertisements foreign keys do.
func (s *Store) deleteAdvertisement(id uint) {
	delete(s.ads, id)
	for rid, r := range s.requests {
		if r.AdvertisementID == id {
			delete(s.requests, rid)
		}
	}
	for rid, r := range s.reviews {
		if r.AdvertisementID == id {
			delete(s.reviews, rid)
		}
	}
	for k := range s.favorites {
		if k.advertisementID == id {
			delete(s.favorites, k)
		}
	}
}

func sameFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
