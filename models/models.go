package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated account. Registration, login and profile
// management live in the identity service; this backend only needs enough of
// the user to resolve ownership and admin rights.
type User struct {
	gorm.Model
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	IsBlocked bool      `json:"is_blocked"`
	LastLogin time.Time `json:"last_login"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

// Product is the catalog entry the cart and checkout read from. Price and
// stock here are the source of truth; carts never snapshot them.
type Product struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}

// Address is referenced by orders, never copied into them.
type Address struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
