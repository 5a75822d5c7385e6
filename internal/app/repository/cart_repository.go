package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindLinesByUserID(userID uint) ([]model.CartLine, error)
	FindByUserAndProduct(userID uint, productID string) (*model.CartItem, error)
	DeleteByUserAndProduct(userID uint, productID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindLinesByUserID returns the user's cart joined with product display
// data, the shape the storefront renders directly.
func (r *cartRepository) FindLinesByUserID(userID uint) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.Table("cart_items").
		Select(`products.id AS product_id, products.title, products.description,
			products.price, products.accum, products.memory, products.photo,
			products.brand, products.category, products.rating,
			products.stock_quantity, cart_items.quantity AS cart_quantity`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at").
		Scan(&lines).Error
	if err != nil {
		logger.Error("Failed to load cart lines from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) FindByUserAndProduct(userID uint, productID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) DeleteByUserAndProduct(userID uint, productID string) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
	if err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	return nil
}
