package service

import (
	"errors"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type RatingService interface {
	Rate(userID uint, productID string, value int) (*model.ProductRating, error)
	GetProductRating(productID string, userID *uint) (*model.ProductRating, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	productRepo repository.ProductRepository,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
	}
}

// Rate records the user's score for a product, overwriting any previous
// one, then recomputes the aggregate and refreshes the product's derived
// rating column.
func (s *ratingService) Rate(userID uint, productID string, value int) (*model.ProductRating, error) {
	logger.Info("Rating product", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"value":      value,
	})

	if value < 1 || value > 5 {
		logger.Warn("Rating rejected: value out of range", map[string]interface{}{
			"user_id": userID,
			"value":   value,
		})
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Rating rejected: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	rating := &model.Rating{
		UserID:    userID,
		ProductID: productID,
		Value:     value,
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		logger.Error("Failed to upsert rating", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	average, count, err := s.ratingRepo.Aggregate(productID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateRating(productID, average); err != nil {
		return nil, err
	}

	logger.Info("Product rated successfully", map[string]interface{}{
		"product_id": productID,
		"average":    average,
		"count":      count,
	})

	own := value
	return &model.ProductRating{
		Average:    average,
		Count:      count,
		UserRating: &own,
	}, nil
}

// GetProductRating returns the aggregate for a product and, when a user
// is known, that user's own score.
func (s *ratingService) GetProductRating(productID string, userID *uint) (*model.ProductRating, error) {
	average, count, err := s.ratingRepo.Aggregate(productID)
	if err != nil {
		logger.Error("Failed to fetch product rating", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	result := &model.ProductRating{
		Average: average,
		Count:   count,
	}

	if userID != nil {
		own, err := s.ratingRepo.FindByUserAndProduct(*userID, productID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if own != nil {
			result.UserRating = &own.Value
		}
	}

	return result, nil
}
