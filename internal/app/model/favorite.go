package model

import (
	"time"
)

// FavoriteItem is an existence-only relation; inserts are idempotent
type FavoriteItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_product" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_favorite_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (FavoriteItem) TableName() string {
	return "favorite_items"
}
