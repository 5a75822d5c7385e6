package service

import (
	"errors"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteService interface {
	GetUserFavorites(userID uint) ([]model.FavoriteItem, error)
	AddToFavorites(userID uint, productID string) error
	RemoveFromFavorites(userID uint, productID string) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *favoriteService) GetUserFavorites(userID uint) ([]model.FavoriteItem, error) {
	items, err := s.favoriteRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

// AddToFavorites marks a product as a favorite. Adding a product that is
// already a favorite is a no-op, not an error.
func (s *favoriteService) AddToFavorites(userID uint, productID string) error {
	logger.Info("Adding product to favorites", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add favorite: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		return err
	}

	item := &model.FavoriteItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Add(item); err != nil {
		logger.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (s *favoriteService) RemoveFromFavorites(userID uint, productID string) error {
	logger.Info("Removing product from favorites", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	return s.favoriteRepo.DeleteByUserAndProduct(userID, productID)
}
