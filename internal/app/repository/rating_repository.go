package repository

import (
	"errors"
	"math"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(rating *model.Rating) error
	Aggregate(productID string) (average float64, count int64, err error)
	FindByUserAndProduct(userID uint, productID string) (*model.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts a rating or overwrites the existing one for the same
// (user, product) pair. Last write wins; no history is kept.
func (r *ratingRepository) Upsert(rating *model.Rating) error {
	logger.Debug("Upserting rating in database", map[string]interface{}{
		"user_id":    rating.UserID,
		"product_id": rating.ProductID,
		"value":      rating.Value,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		logger.Error("Failed to upsert rating in database", err, map[string]interface{}{
			"user_id":    rating.UserID,
			"product_id": rating.ProductID,
		})
		return err
	}
	return nil
}

// Aggregate computes the arithmetic mean (rounded to one decimal place)
// and count of ratings for a product. Average is 0 when there are none.
func (r *ratingRepository) Aggregate(productID string) (float64, int64, error) {
	var result struct {
		Average *float64
		Count   int64
	}

	err := r.db.Model(&model.Rating{}).
		Select("AVG(value) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to aggregate ratings", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, 0, err
	}

	if result.Average == nil {
		return 0, 0, nil
	}
	return math.Round(*result.Average*10) / 10, result.Count, nil
}

func (r *ratingRepository) FindByUserAndProduct(userID uint, productID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		logger.Error("Failed to load rating from database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}
	return &rating, nil
}
