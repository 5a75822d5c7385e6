package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// GetProducts returns the catalog, optionally filtered and sorted
// GET /api/v1/products?category=&price_gte=&price_lte=&sort=price_asc|price_desc
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Category: c.Query("category"),
	}

	if raw := c.Query("price_gte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "price_gte must be a number")
			return
		}
		filter.PriceGTE = &v
	}
	if raw := c.Query("price_lte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "price_lte must be a number")
			return
		}
		filter.PriceLTE = &v
	}

	switch c.Query("sort") {
	case "":
	case "price_asc":
		filter.SortPrice = "asc"
	case "price_desc":
		filter.SortPrice = "desc"
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "sort must be price_asc or price_desc")
		return
	}

	products, err := ctrl.productService.GetProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one catalog entry
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a catalog entry
// POST /api/v1/products (admin)
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductAlreadyExists):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "A product with this id already exists")
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.BadRequest(c, apperrors.BrandNotFound, "Unknown brand")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be positive")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock quantity cannot be negative")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"product_id": input.ID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct replaces a catalog entry
// PUT /api/v1/products/:id (admin)
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.BadRequest(c, apperrors.BrandNotFound, "Unknown brand")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be positive")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Stock quantity cannot be negative")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a catalog entry
// DELETE /api/v1/products/:id (admin)
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ExportProducts streams the catalog as an xlsx workbook
// GET /api/v1/products/export (admin)
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.productService.ExportCatalog()
	if err != nil {
		log.Error("Failed to export catalog", err)
		apperrors.InternalError(c, "Failed to export the catalog")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream catalog export", err)
	}
}
