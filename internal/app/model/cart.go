package model

import (
	"time"
)

// CartItem is one cart line. A missing row means quantity zero; the
// reconciler deletes the row when the quantity reaches zero.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine is a cart row joined with product display data
type CartLine struct {
	ProductID     string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Accum         string  `json:"accum"`
	Memory        string  `json:"memory"`
	Photo         string  `json:"photo"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	StockQuantity int     `json:"stockQuantity"`
	CartQuantity  int     `json:"cartQuantity"`
}

// AdjustCartRequest applies a signed delta to a cart line
type AdjustCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Delta     *int   `json:"delta" binding:"required"`
}
