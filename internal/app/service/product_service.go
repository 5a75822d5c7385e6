package service

import (
	"errors"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrBrandNotFound        = errors.New("brand not found")
	ErrProductAlreadyExists = errors.New("product with this id already exists")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInvalidStock         = errors.New("stock quantity cannot be negative")
)

// ProductInput is the write model for catalog entries
type ProductInput struct {
	ID            string  `json:"id" binding:"required"`
	Brand         string  `json:"brand" binding:"required"`
	Category      string  `json:"category"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	StockQuantity int     `json:"quantity"`
	Accum         string  `json:"accum"`
	Memory        string  `json:"memory"`
	Photo         string  `json:"photo"`
}

type ProductService interface {
	GetProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id string) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id string, input ProductInput) (*model.Product, error)
	DeleteProduct(id string) error
	ExportCatalog() (*excelize.File, error)
}

type productService struct {
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
) ProductService {
	return &productService{
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

func (s *productService) GetProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to fetch products", err, map[string]interface{}{
			"category": filter.Category,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"product_id": input.ID,
		"brand":      input.Brand,
		"title":      input.Title,
	})

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(input.ID); err == nil {
		logger.Warn("Product creation failed: id already in use", map[string]interface{}{
			"product_id": input.ID,
		})
		return nil, ErrProductAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &model.Product{
		ID:            input.ID,
		Brand:         input.Brand,
		Category:      input.Category,
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		Accum:         input.Accum,
		Memory:        input.Memory,
		Photo:         input.Photo,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"product_id": input.ID,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id string, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	input.ID = id
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	product.Brand = input.Brand
	product.Category = input.Category
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.StockQuantity = input.StockQuantity
	product.Accum = input.Accum
	product.Memory = input.Memory
	product.Photo = input.Photo

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id string) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.productRepo.Delete(id)
}

// validateInput checks the domain rules binding tags cannot express:
// positive price, non-negative stock and a brand that actually exists.
func (s *productService) validateInput(input ProductInput) error {
	if input.Price <= 0 {
		return ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return ErrInvalidStock
	}

	if _, err := s.brandRepo.FindByName(input.Brand); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product validation failed: unknown brand", map[string]interface{}{
				"product_id": input.ID,
				"brand":      input.Brand,
			})
			return ErrBrandNotFound
		}
		return err
	}
	return nil
}

// ExportCatalog renders the full catalog as a spreadsheet for back-office
// use.
func (s *productService) ExportCatalog() (*excelize.File, error) {
	products, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		logger.Error("Failed to fetch products for export", err)
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Catalog"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Brand", "Category", "Title", "Price", "Stock", "Rating"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range products {
		values := []interface{}{p.ID, p.Brand, p.Category, p.Title, p.Price, p.StockQuantity, p.Rating}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"product_count": len(products),
	})
	return f, nil
}
