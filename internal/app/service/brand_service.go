package service

import (
	"errors"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBrandAlreadyExists = errors.New("brand already exists")
	ErrBrandInUse         = errors.New("brand is referenced by existing products")
)

type BrandService interface {
	ListBrandNames() ([]string, error)
	CreateBrand(name string) (*model.Brand, error)
	DeleteBrand(name string) error
}

type brandService struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
}

func NewBrandService(
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
) BrandService {
	return &brandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
	}
}

func (s *brandService) ListBrandNames() ([]string, error) {
	brands, err := s.brandRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list brands", err)
		return nil, err
	}

	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}
	return names, nil
}

func (s *brandService) CreateBrand(name string) (*model.Brand, error) {
	logger.Info("Creating brand", map[string]interface{}{
		"name": name,
	})

	existing, err := s.brandRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Brand creation failed: name already taken", map[string]interface{}{
			"name": name,
		})
		return nil, ErrBrandAlreadyExists
	}

	brand := &model.Brand{Name: name}
	if err := s.brandRepo.Create(brand); err != nil {
		logger.Error("Failed to create brand", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand, refusing while any product references it.
func (s *brandService) DeleteBrand(name string) error {
	logger.Info("Deleting brand", map[string]interface{}{
		"name": name,
	})

	if _, err := s.brandRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}

	count, err := s.productRepo.CountByBrand(name)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Brand deletion refused: products still reference it", map[string]interface{}{
			"name":          name,
			"product_count": count,
		})
		return ErrBrandInUse
	}

	return s.brandRepo.DeleteByName(name)
}
