package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalogue listing. Price is in minor currency units
// (cents), so total-price checks are exact integer comparisons.
type Product struct {
	gorm.Model
	Title       string `gorm:"size:255;not null;index" json:"title"`
	Description string `gorm:"type:text;not null"      json:"description"`
	Price       int64  `gorm:"not null"                json:"price"`
	Quantity    int    `gorm:"not null;default:0"      json:"quantity"`
	CoverImage  string `gorm:"size:512"                json:"coverImage"`
	SellerID    uint   `gorm:"not null;index"          json:"seller"`

	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`

	// Buyers holds one row per successful purchase, newest last.
	Buyers []ProductBuyer `gorm:"foreignKey:ProductID" json:"buyers,omitempty"`
}

// ProductImage is one gallery image URL for a product (max 4 enforced at
// the validation layer).
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"not null;index"           json:"-"`
	URL       string `gorm:"size:512;not null"        json:"url"`
}

// ProductBuyer records one successful purchase. It is an explicit
// row-per-purchase table, not a deduplicating join: buying the same
// product twice appends two rows.
type ProductBuyer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index"           json:"productId"`
	UserID    uint      `gorm:"not null;index"           json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt"`
}
