package repositories

import (
	stderrors "errors"

	"gorm.io/gorm"
)

// HouseFilter narrows house listings. Zero values mean no restriction.
type HouseFilter struct {
	OwnerID    uint
	CategoryID uint
}

// AdvertisementFilter narrows advertisement listings. Zero values mean no restriction.
type AdvertisementFilter struct {
	ApprovedOnly bool
	UnrentedOnly bool
	CategoryID   uint
	FavoritedBy  uint
}

// ProfileUpdate carries the profile fields a caller supplied. Nil means unchanged.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Address      *string
	Image        *string
	MobileNumber *string
}

func isDuplicate(err error) bool {
	return stderrors.Is(err, gorm.ErrDuplicatedKey)
}
