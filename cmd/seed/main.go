package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/avoronov/techstore-backend/config"
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports a product catalog from an XLSX workbook.
// Expected columns: ID, Brand, Category, Title, Description, Price,
// Quantity, Accum, Memory, Photo. The first row is the header.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	brandRepo := repository.NewBrandRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	skipped := 0
	for i := range products {
		p := &products[i]

		if err := ensureBrand(brandRepo, p.Brand); err != nil {
			log.Fatal("Failed to register brand:", err)
		}

		if _, err := productRepo.FindByID(p.ID); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to check product:", err)
		}

		if err := productRepo.Create(p); err != nil {
			log.Fatal("Failed to create product:", err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d, skipped (already present): %d\n", imported, skipped)
}

func ensureBrand(brandRepo repository.BrandRepository, name string) error {
	_, err := brandRepo.FindByName(name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return brandRepo.Create(&model.Brand{Name: name})
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows[1:] {
		if len(row) < 6 {
			skippedCount++
			continue
		}

		id := strings.TrimSpace(cell(row, 0))
		brand := strings.TrimSpace(cell(row, 1))
		title := strings.TrimSpace(cell(row, 3))
		if id == "" || brand == "" || title == "" || seen[id] {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 5)), 64)
		if err != nil || price <= 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+2, cell(row, 5))
			skippedCount++
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(cell(row, 6)))
		if err != nil || quantity < 0 {
			quantity = 0
		}

		seen[id] = true
		products = append(products, model.Product{
			ID:            id,
			Brand:         brand,
			Category:      strings.TrimSpace(cell(row, 2)),
			Title:         title,
			Description:   strings.TrimSpace(cell(row, 4)),
			Price:         price,
			StockQuantity: quantity,
			Accum:         strings.TrimSpace(cell(row, 7)),
			Memory:        strings.TrimSpace(cell(row, 8)),
			Photo:         strings.TrimSpace(cell(row, 9)),
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d invalid or duplicate rows\n", skippedCount)
	}

	return products, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
