package database

import (
	"fmt"
	"log"

	"github.com/kevmogita/duka-pos/internal/config"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"github.com/kevmogita/duka-pos/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Translate driver errors into gorm's portable errors so the sale
		// service can detect transaction number collisions via
		// gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Item{},
		&entity.Sale{},
		&entity.SaleLineItem{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default users and a starter
// catalog. Seeding is idempotent: existing rows are left alone.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	type seedUser struct {
		username string
		password string
		fullName string
		role     enum.Role
	}

	users := []seedUser{
		{"manager", "manager123", "Store Manager", enum.RoleManager},
		{"clerk1", "clerk123", "John Clerk", enum.RoleClerk},
		{"clerk2", "clerk123", "Sarah Clerk", enum.RoleClerk},
		{"employee1", "employee123", "David Employee", enum.RoleEmployee},
		{"employee2", "employee123", "Lisa Employee", enum.RoleEmployee},
	}

	for _, u := range users {
		var existing entity.User
		if err := db.Where("username = ?", u.username).First(&existing).Error; err == nil {
			continue
		}

		hashed, err := utils.HashPassword(u.password)
		if err != nil {
			log.Printf("Warning: failed to hash password for %s: %v", u.username, err)
			continue
		}

		user := entity.User{
			Username: u.username,
			FullName: u.fullName,
			Password: hashed,
			Role:     u.role,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Warning: failed to seed user %s: %v", u.username, err)
		}
	}

	// Starter catalog. Prices are stored in cents.
	items := []entity.Item{
		{Code: "GRC001", Name: "Basmati Rice", Category: enum.CategoryGroceries, Unit: enum.UnitKilogram, UnitPrice: 12000, CostPrice: 9000, Stock: 500, MinStock: 50},
		{Code: "GRC002", Name: "Wheat Flour", Category: enum.CategoryGroceries, Unit: enum.UnitKilogram, UnitPrice: 4500, CostPrice: 3500, Stock: 750, MinStock: 100},
		{Code: "GRC003", Name: "Sugar", Category: enum.CategoryGroceries, Unit: enum.UnitKilogram, UnitPrice: 5000, CostPrice: 4000, Stock: 600, MinStock: 80},
		{Code: "DRY001", Name: "Fresh Milk", Category: enum.CategoryDairy, Unit: enum.UnitLiter, UnitPrice: 6000, CostPrice: 4500, Stock: 200, MinStock: 30},
		{Code: "DRY002", Name: "Cheddar Cheese", Category: enum.CategoryDairy, Unit: enum.UnitKilogram, UnitPrice: 35000, CostPrice: 28000, Stock: 80, MinStock: 10},
		{Code: "DRY003", Name: "Plain Yogurt", Category: enum.CategoryDairy, Unit: enum.UnitKilogram, UnitPrice: 8000, CostPrice: 6000, Stock: 150, MinStock: 20},
		{Code: "BEV001", Name: "Orange Juice", Category: enum.CategoryBeverages, Unit: enum.UnitLiter, UnitPrice: 12000, CostPrice: 9000, Stock: 180, MinStock: 25},
		{Code: "BEV002", Name: "Coca Cola", Category: enum.CategoryBeverages, Unit: enum.UnitLiter, UnitPrice: 4000, CostPrice: 3000, Stock: 300, MinStock: 50},
		{Code: "BEV003", Name: "Mineral Water", Category: enum.CategoryBeverages, Unit: enum.UnitLiter, UnitPrice: 2000, CostPrice: 1500, Stock: 500, MinStock: 100},
		{Code: "SNK001", Name: "Potato Chips", Category: enum.CategorySnacks, Unit: enum.UnitPack, UnitPrice: 5000, CostPrice: 3500, Stock: 250, MinStock: 40},
		{Code: "SNK002", Name: "Chocolate Bar", Category: enum.CategorySnacks, Unit: enum.UnitPiece, UnitPrice: 8000, CostPrice: 5500, Stock: 400, MinStock: 60},
		{Code: "SNK003", Name: "Biscuits Pack", Category: enum.CategorySnacks, Unit: enum.UnitPack, UnitPrice: 6000, CostPrice: 4200, Stock: 300, MinStock: 50},
		{Code: "FRZ001", Name: "Ice Cream", Category: enum.CategoryFrozen, Unit: enum.UnitLiter, UnitPrice: 25000, CostPrice: 18000, Stock: 100, MinStock: 15},
		{Code: "FRZ002", Name: "Frozen Pizza", Category: enum.CategoryFrozen, Unit: enum.UnitPiece, UnitPrice: 35000, CostPrice: 26000, Stock: 120, MinStock: 20},
		{Code: "BAK001", Name: "White Bread", Category: enum.CategoryBakery, Unit: enum.UnitPiece, UnitPrice: 4000, CostPrice: 2800, Stock: 150, MinStock: 30},
		{Code: "BAK002", Name: "Croissant", Category: enum.CategoryBakery, Unit: enum.UnitPiece, UnitPrice: 5000, CostPrice: 3500, Stock: 100, MinStock: 20},
		{Code: "HHS001", Name: "Dish Soap", Category: enum.CategoryHousehold, Unit: enum.UnitLiter, UnitPrice: 12000, CostPrice: 9000, Stock: 200, MinStock: 30},
		{Code: "HHS002", Name: "Laundry Detergent", Category: enum.CategoryHousehold, Unit: enum.UnitKilogram, UnitPrice: 30000, CostPrice: 22000, Stock: 150, MinStock: 25},
		{Code: "PER001", Name: "Shampoo", Category: enum.CategoryPersonalCare, Unit: enum.UnitLiter, UnitPrice: 25000, CostPrice: 18000, Stock: 180, MinStock: 25},
		{Code: "PER002", Name: "Toothpaste", Category: enum.CategoryPersonalCare, Unit: enum.UnitPiece, UnitPrice: 8000, CostPrice: 5500, Stock: 250, MinStock: 40},
	}

	for i := range items {
		var existing entity.Item
		if err := db.Where("code = ?", items[i].Code).First(&existing).Error; err == nil {
			continue
		}
		items[i].IsActive = true
		if err := db.Create(&items[i]).Error; err != nil {
			log.Printf("Warning: failed to seed item %s: %v", items[i].Code, err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
