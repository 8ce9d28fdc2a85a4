package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(30);not null" json:"name"`
	Slug string `gorm:"type:varchar(40);uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}

// MaxPrice is the exclusive upper bound of numeric(12,2).
var MaxPrice = decimal.New(1, 10)

type House struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OwnerID      uint            `gorm:"not null;index" json:"owner_id"`
	Owner        *Account        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Title        string          `gorm:"type:varchar(100);not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Location     string          `gorm:"type:varchar(100);not null" json:"location"`
	Image        *string         `gorm:"type:varchar(500)" json:"image"`
	Categories   []Category      `gorm:"many2many:house_categories;constraint:OnDelete:CASCADE" json:"category"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	IsAdvertised bool            `gorm:"not null;default:false" json:"is_advertised"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidPrice reports whether p fits numeric(12,2) and is not negative.
func ValidPrice(p decimal.Decimal) bool {
	if p.IsNegative() || p.GreaterThanOrEqual(MaxPrice) {
		return false
	}
	return p.Equal(p.Round(2))
}

// BeforeSave hook for validation
func (h *House) BeforeSave(tx *gorm.DB) error {
	if h.Title == "" || h.Location == "" {
		return gorm.ErrInvalidData
	}
	if !ValidPrice(h.Price) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (House) TableName() string {
	return "houses"
}

// CategoryIDs returns the ids of the attached categories.
func (h *House) CategoryIDs() []uint {
	ids := make([]uint, 0, len(h.Categories))
	for _, c := range h.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
