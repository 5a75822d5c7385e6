package controller

import (
	"errors"
	"net/http"

	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BrandController struct {
	brandService service.BrandService
}

func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{
		brandService: brandService,
	}
}

type CreateBrandRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

// GetBrands returns all brand names
// GET /api/v1/brands
func (ctrl *BrandController) GetBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	names, err := ctrl.brandService.ListBrandNames()
	if err != nil {
		log.Error("Failed to list brands", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get brands")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": names,
	})
}

// CreateBrand registers a brand name
// POST /api/v1/brands (admin)
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Brand name is required")
		return
	}

	brand, err := ctrl.brandService.CreateBrand(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrBrandAlreadyExists) {
			apperrors.Conflict(c, apperrors.BrandAlreadyExists, "A brand with this name already exists")
			return
		}
		log.Error("Failed to create brand", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create brand")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand created successfully",
		"brand":   brand,
	})
}

// DeleteBrand removes a brand that no product references
// DELETE /api/v1/brands/:name (admin)
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := c.Param("name")
	if err := ctrl.brandService.DeleteBrand(name); err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.BrandNotFound, "Brand not found")
		case errors.Is(err, service.ErrBrandInUse):
			apperrors.Conflict(c, apperrors.BrandInUse, "Products still reference this brand")
		default:
			log.Error("Failed to delete brand", err, map[string]interface{}{
				"name": name,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete brand")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand deleted successfully",
	})
}
