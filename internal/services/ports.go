package services

import (
	"context"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

type UserStore interface {
	CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetAccountByUserID(ctx context.Context, userID uint) (*models.Account, error)
	MarkVerified(ctx context.Context, userID uint, staff bool) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error
	UpdateProfile(ctx context.Context, userID uint, update repositories.ProfileUpdate) error
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
}

type TokenStore interface {
	GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
	Replace(ctx context.Context, token *models.AuthToken) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type HouseStore interface {
	List(ctx context.Context, filter repositories.HouseFilter) ([]models.House, error)
	GetByID(ctx context.Context, id uint) (*models.House, error)
	Create(ctx context.Context, house *models.House) error
	Update(ctx context.Context, house *models.House, categories []models.Category) error
	Delete(ctx context.Context, id uint) error
}

type AdvertisementStore interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id uint) (*models.Advertisement, error)
	GetByHouseID(ctx context.Context, houseID uint) (*models.Advertisement, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Approve(ctx context.Context, houseID uint) (*models.Advertisement, error)
	List(ctx context.Context, filter repositories.AdvertisementFilter) ([]models.Advertisement, error)
}

type FavoriteStore interface {
	Contains(ctx context.Context, accountID, advertisementID uint) (bool, error)
	Add(ctx context.Context, accountID, advertisementID uint) error
	Remove(ctx context.Context, accountID, advertisementID uint) (bool, error)
	ListIDs(ctx context.Context, accountID uint) ([]uint, error)
}

type RentalLedger interface {
	Transact(ctx context.Context, fn func(tx repositories.RentalTx) error) error
	ListForOwner(ctx context.Context, ownerID uint) ([]models.RentRequest, error)
	GetForOwner(ctx context.Context, id, ownerID uint) (*models.RentRequest, error)
}

type ReviewStore interface {
	List(ctx context.Context, advertisementID uint) ([]models.Review, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

// Notifier delivers account emails. Implementations must not block on delivery.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, user *models.User, uid, token string) error
}

// AdvertisementCache stores serialized public advertisement lists.
type AdvertisementCache interface {
	GetApproved(ctx context.Context, categoryID uint) ([]byte, error)
	SetApproved(ctx context.Context, categoryID uint, payload []byte) error
	InvalidateApproved(ctx context.Context) error
}

// invalidateListings drops cached public lists. Cache failures never fail a write.
func invalidateListings(ctx context.Context, cache AdvertisementCache) {
	if err := cache.InvalidateApproved(ctx); err != nil {
		logger.Warn("Failed to invalidate advertisement cache", "error", err)
	}
}
