package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(item *model.FavoriteItem) error
	FindByUserID(userID uint) ([]model.FavoriteItem, error)
	DeleteByUserAndProduct(userID uint, productID string) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts a favorite if it is not already present. Repeated adds for
// the same (user, product) are a no-op.
func (r *favoriteRepository) Add(item *model.FavoriteItem) error {
	logger.Debug("Adding favorite in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
	if err != nil {
		logger.Error("Failed to add favorite in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByUserID(userID uint) ([]model.FavoriteItem, error) {
	var items []model.FavoriteItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to list favorites from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *favoriteRepository) DeleteByUserAndProduct(userID uint, productID string) error {
	logger.Debug("Deleting favorite from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.FavoriteItem{}).Error
	if err != nil {
		logger.Error("Failed to delete favorite from database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	return nil
}
