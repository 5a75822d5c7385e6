package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll() ([]model.Brand, error)
	FindByName(name string) (*model.Brand, error)
	DeleteByName(name string) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	logger.Debug("Creating brand in database", map[string]interface{}{
		"name": brand.Name,
	})

	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindAll() ([]model.Brand, error) {
	var brands []model.Brand
	if err := r.db.Order("name").Find(&brands).Error; err != nil {
		logger.Error("Failed to list brands from database", err)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByName(name string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) DeleteByName(name string) error {
	logger.Debug("Deleting brand from database", map[string]interface{}{
		"name": name,
	})

	if err := r.db.Where("name = ?", name).Delete(&model.Brand{}).Error; err != nil {
		logger.Error("Failed to delete brand from database", err, map[string]interface{}{
			"name": name,
		})
		return err
	}
	return nil
}
