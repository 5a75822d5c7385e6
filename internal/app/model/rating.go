package model

import (
	"time"
)

// Rating holds at most one score per (user, product); re-rating overwrites
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"product_id"`
	Value     int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// ProductRating is the aggregate read model for a product
type ProductRating struct {
	Average    float64 `json:"average"`
	Count      int64   `json:"count"`
	UserRating *int    `json:"userRating"`
}

// RateProductRequest is the payload for rating a product
type RateProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
}
