package controller

import (
	"errors"
	"net/http"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RatingController struct {
	ratingService service.RatingService
}

func NewRatingController(ratingService service.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

// GetRating returns a product's rating aggregate. When the caller is
// authenticated, the response also carries their own score.
// GET /api/v1/ratings/:product_id
func (ctrl *RatingController) GetRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("product_id")

	var userID *uint
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	rating, err := ctrl.ratingService.GetProductRating(productID, userID)
	if err != nil {
		log.Error("Failed to fetch product rating", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get rating")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// RateProduct records the caller's score for a product
// POST /api/v1/ratings
func (ctrl *RatingController) RateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req model.RateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid rating request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "productId and rating are required")
		return
	}

	userID, _ := middleware.GetUserID(c)
	rating, err := ctrl.ratingService.Rate(userID, req.ProductID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.RatingInvalidValue, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			log.Error("Failed to rate product", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "rate product")
		}
		return
	}

	c.JSON(http.StatusOK, rating)
}
