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

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// GetCart returns the user's cart joined with product data
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)
	lines, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": lines,
	})
}

// AdjustCart applies a signed quantity delta to one cart line and returns
// the resulting cart
// POST /api/v1/cart
func (ctrl *CartController) AdjustCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req model.AdjustCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart adjustment request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "productId and delta are required")
		return
	}

	userID, _ := middleware.GetUserID(c)
	lines, err := ctrl.cartService.Reconcile(userID, req.ProductID, *req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidDelta):
			apperrors.BadRequest(c, apperrors.CartInvalidDelta, "Cannot remove more items than the cart holds")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.CartInsufficientStock, "Not enough stock for the requested quantity")
		default:
			log.Error("Failed to adjust cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "adjust cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": lines,
	})
}

// RemoveFromCart drops a cart line regardless of quantity
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("product_id")
	userID, _ := middleware.GetUserID(c)

	lines, err := ctrl.cartService.RemoveItem(userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": lines,
	})
}
