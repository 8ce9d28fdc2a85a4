package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the login identity. Profile data lives on Account.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(254);index;not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(150)" json:"last_name"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:false" json:"-"`
	IsStaff      bool       `gorm:"not null;default:false" json:"-"`
	LastLogin    *time.Time `json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Username == "" || u.Email == "" || u.PasswordHash == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Account types
const (
	AccountTypeAdmin = "Admin"
	AccountTypeUser  = "User"
)

// Account is the marketplace profile owned by a User.
type Account struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"uniqueIndex;not null" json:"-"`
	User              User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	AccountType       string     `gorm:"type:varchar(100);not null;default:'User'" json:"account_type"`
	Address           string     `gorm:"type:varchar(100);not null" json:"address"`
	Image             string     `gorm:"type:varchar(500)" json:"image"`
	MobileNumber      string     `gorm:"type:varchar(12)" json:"mobile_number"`
	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationToken *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`
	Favourites        []uint     `gorm:"-" json:"favourites"`
}

// IsValidAccountType reports whether t is a known account type.
func IsValidAccountType(t string) bool {
	return t == AccountTypeAdmin || t == AccountTypeUser
}

// BeforeSave hook for validation
func (a *Account) BeforeSave(tx *gorm.DB) error {
	if !IsValidAccountType(a.AccountType) {
		return gorm.ErrInvalidData
	}
	if len(a.MobileNumber) > 12 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}

// AuthToken is the persistent bearer token of a user. One per user.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;type:varchar(512)"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Expired reports whether the token is past its expiry at now.
func (t *AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
