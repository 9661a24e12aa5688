package models

import "gorm.io/gorm"

// Roles a user account can hold. ADMIN unlocks catalogue and order
// management endpoints.
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

// User is the account model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;not null;default:USER" json:"role"`

	// ProductsBought holds one row per successful purchase, in order.
	// A repeat buyer appears once per purchase.
	ProductsBought []ProductBuyer `gorm:"foreignKey:UserID" json:"productsBought,omitempty"`

	// ProductsUploaded are the products this user listed for sale.
	ProductsUploaded []Product `gorm:"foreignKey:SellerID" json:"productsUploaded,omitempty"`
}

// IsAdmin reports whether the user may manage the catalogue and orders.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
