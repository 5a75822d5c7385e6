package controller

import (
	"errors"
	"net/http"

	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

type AddFavoriteRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetFavorites returns the user's favorite products
// GET /api/v1/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)
	items, err := ctrl.favoriteService.GetUserFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": items,
		"count":     len(items),
	})
}

// AddFavorite marks a product as a favorite (idempotent)
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "productId is required")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := ctrl.favoriteService.AddToFavorites(userID, req.ProductID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add favorite")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to favorites",
	})
}

// RemoveFavorite unmarks a product
// DELETE /api/v1/favorites/:product_id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("product_id")
	userID, _ := middleware.GetUserID(c)

	if err := ctrl.favoriteService.RemoveFromFavorites(userID, productID); err != nil {
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from favorites",
	})
}
