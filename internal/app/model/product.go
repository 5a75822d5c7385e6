package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. IDs are assigned externally by the catalog
// import, so the primary key is a string rather than an autoincrement.
type Product struct {
	ID            string         `gorm:"primarykey" json:"id"`
	Brand         string         `gorm:"index;not null" json:"brand"`
	Category      string         `gorm:"index" json:"category"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"default:0" json:"stockQuantity"`
	Rating        float64        `gorm:"default:0" json:"rating"` // aggregate, recomputed on every rating write
	Accum         string         `json:"accum"`
	Memory        string         `json:"memory"`
	Photo         string         `json:"photo"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
	Comments  []Comment  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
