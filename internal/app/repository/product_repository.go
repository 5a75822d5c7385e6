package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows and orders a catalog listing
type ProductFilter struct {
	Category  string
	PriceGTE  *float64
	PriceLTE  *float64
	SortPrice string // "asc", "desc" or empty
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id string) (*model.Product, error)
	FindAll(filter ProductFilter) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id string) error
	CountByBrand(brand string) (int64, error)
	UpdateRating(id string, rating float64) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(filter ProductFilter) ([]model.Product, error) {
	query := r.db.Model(&model.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PriceGTE != nil {
		query = query.Where("price >= ?", *filter.PriceGTE)
	}
	if filter.PriceLTE != nil {
		query = query.Where("price <= ?", *filter.PriceLTE)
	}
	if filter.SortPrice == "asc" || filter.SortPrice == "desc" {
		query = query.Order("price " + filter.SortPrice)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to list products from database", err, map[string]interface{}{
			"category": filter.Category,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id string) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Where("id = ?", id).Delete(&model.Product{}).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) CountByBrand(brand string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Where("brand = ?", brand).Count(&count).Error; err != nil {
		logger.Error("Failed to count products by brand", err, map[string]interface{}{
			"brand": brand,
		})
		return 0, err
	}
	return count, nil
}

// UpdateRating refreshes the derived aggregate column after a rating write
func (r *productRepository) UpdateRating(id string, rating float64) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("rating", rating).Error; err != nil {
		logger.Error("Failed to update product rating", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
