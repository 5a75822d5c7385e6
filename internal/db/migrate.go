package db

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Brand{},
		&model.Product{},
		&model.Comment{},
		&model.CartItem{},
		&model.Rating{},
		&model.FavoriteItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial catalog data to the database (optional)
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedBrands(); err != nil {
		logger.Error("Failed to seed brands", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedBrands() error {
	var count int64
	if err := DB.Model(&model.Brand{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Brands already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	brands := []model.Brand{
		{Name: "Samsung"},
		{Name: "Apple"},
		{Name: "Xiaomi"},
		{Name: "Lenovo"},
		{Name: "Asus"},
	}

	for _, brand := range brands {
		if err := DB.Create(&brand).Error; err != nil {
			logger.Error("Failed to create brand", err, map[string]interface{}{
				"brand": brand.Name,
			})
			return err
		}
	}

	logger.Info("Brands seeded successfully", map[string]interface{}{
		"total_brands": len(brands),
	})
	return nil
}
