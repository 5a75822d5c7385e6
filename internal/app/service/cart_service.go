package service

import (
	"errors"
	"fmt"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidDelta      = errors.New("cannot remove more items than the cart holds")
	ErrInsufficientStock = errors.New("insufficient product stock")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.CartLine, error)
	Reconcile(userID uint, productID string, delta int) ([]model.CartLine, error)
	RemoveItem(userID uint, productID string) ([]model.CartLine, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	db       *gorm.DB
}

func NewCartService(cartRepo repository.CartRepository, db *gorm.DB) CartService {
	return &cartService{
		cartRepo: cartRepo,
		db:       db,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartLine, error) {
	lines, err := s.cartRepo.FindLinesByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return lines, nil
}

// Reconcile applies a signed delta to the user's cart line for a product.
// The read-validate-write sequence runs in one transaction with the
// product row locked, so concurrent deltas for the same line cannot lose
// updates. A line that reaches zero is deleted rather than stored.
func (s *cartService) Reconcile(userID uint, productID string, delta int) ([]model.CartLine, error) {
	logger.Info("Reconciling cart quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"delta":      delta,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during cart reconciliation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
		}
	}()

	var product model.Product
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&product).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart reconciliation failed: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart reconciliation", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	var current model.CartItem
	currentQty := 0
	found := true
	if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&current).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			logger.Error("Failed to fetch cart item for reconciliation", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, err
		}
		found = false
	} else {
		currentQty = current.Quantity
	}

	newQty := currentQty + delta
	if newQty < 0 {
		tx.Rollback()
		logger.Warn("Cart reconciliation failed: delta below zero", map[string]interface{}{
			"user_id":     userID,
			"product_id":  productID,
			"current_qty": currentQty,
			"delta":       delta,
		})
		return nil, ErrInvalidDelta
	}
	if newQty > product.StockQuantity {
		tx.Rollback()
		logger.Warn("Cart reconciliation failed: insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  newQty,
			"available":  product.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	switch {
	case newQty == 0:
		if found {
			if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
				Delete(&model.CartItem{}).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to delete cart item", err, map[string]interface{}{
					"user_id":    userID,
					"product_id": productID,
				})
				return nil, err
			}
		}
	case found:
		current.Quantity = newQty
		if err := tx.Save(&current).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, err
		}
	default:
		item := model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  newQty,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cart reconciliation", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Cart reconciled successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"new_qty":    newQty,
	})
	return s.GetUserCart(userID)
}

// RemoveItem drops a cart line entirely regardless of its quantity.
func (s *cartService) RemoveItem(userID uint, productID string) ([]model.CartLine, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.cartRepo.FindByUserAndProduct(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for removal", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		return nil, err
	}

	return s.GetUserCart(userID)
}
