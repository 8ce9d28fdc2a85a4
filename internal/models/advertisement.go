package models

import (
	"time"

	"gorm.io/gorm"
)

// Advertisement is the public offer of one House. At most one per house.
type Advertisement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HouseID     uint      `gorm:"uniqueIndex;not null" json:"house_id"`
	House       *House    `gorm:"foreignKey:HouseID;constraint:OnDelete:CASCADE" json:"house,omitempty"`
	IsApproved  bool      `gorm:"not null;default:false;index" json:"is_approved"`
	IsRented    bool      `gorm:"not null;default:false;index" json:"is_rented"`
	IsRequested bool      `gorm:"not null;default:false" json:"is_requested"`
	Reviews     []Review  `gorm:"foreignKey:AdvertisementID" json:"reviews"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Listed reports whether the advertisement appears in the public listing.
func (a *Advertisement) Listed() bool {
	return a.IsApproved && !a.IsRented
}

func (Advertisement) TableName() string {
	return "advertisements"
}

type RentRequestStatus string

// Rent request status constants
const (
	RentRequestStatusPending  RentRequestStatus = "PENDING"
	RentRequestStatusAccepted RentRequestStatus = "ACCEPTED"
	RentRequestStatusRejected RentRequestStatus = "REJECTED"
)

func (s RentRequestStatus) Valid() bool {
	switch s {
	case RentRequestStatusPending, RentRequestStatusAccepted, RentRequestStatusRejected:
		return true
	}
	return false
}

type RentRequest struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	AdvertisementID uint              `gorm:"not null;index:idx_rent_request_unique,unique" json:"advertisement_id"`
	Advertisement   *Advertisement    `gorm:"foreignKey:AdvertisementID;constraint:OnDelete:CASCADE" json:"advertisement,omitempty"`
	RequestedByID   uint              `gorm:"not null;index:idx_rent_request_unique,unique" json:"requested_by_id"`
	RequestedBy     *Account          `gorm:"foreignKey:RequestedByID;constraint:OnDelete:CASCADE" json:"requested_by,omitempty"`
	Status          RentRequestStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeSave hook for validation
func (r *RentRequest) BeforeSave(tx *gorm.DB) error {
	if !r.Status.Valid() {
		return gorm.ErrInvalidData
	}
	return nil
}

func (RentRequest) TableName() string {
	return "rent_requests"
}

type Review struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AdvertisementID uint           `gorm:"not null;index" json:"advertisement_id"`
	Advertisement   *Advertisement `gorm:"foreignKey:AdvertisementID;constraint:OnDelete:CASCADE" json:"-"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            *Account       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Rating          int            `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Text            string         `gorm:"type:text;not null" json:"text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// ValidRating reports whether r is a 1..5 star rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// BeforeSave hook for validation
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if !ValidRating(r.Rating) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}

// Favorite links an Account to an Advertisement it saved.
type Favorite struct {
	AccountID       uint           `gorm:"primaryKey"`
	Account         *Account       `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	AdvertisementID uint           `gorm:"primaryKey"`
	Advertisement   *Advertisement `gorm:"foreignKey:AdvertisementID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "account_favourites"
}
