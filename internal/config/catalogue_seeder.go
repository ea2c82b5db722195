package config

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/models"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

// SeedCatalogue seeds the starter inventory and supplier list
func SeedCatalogue(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	// Seed Inventory
	if err := seedInventory(db); err != nil {
		return err
	}

	// Seed Suppliers
	if err := seedSuppliers(db); err != nil {
		return err
	}

	log.Println("✅ Catalogue seeded successfully")
	return nil
}

func seedInventory(db *gorm.DB) error {
	for _, item := range stores.BootstrapInventory() {
		var existing models.InventoryItem
		err := db.Where("sku = ?", item.SKU).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := models.InventoryItemFromDomain(item)
		row.ID = 0
		if err := db.Create(row).Error; err != nil {
			return err
		}
		log.Printf("   Created inventory item: %s", item.Name)
	}
	return nil
}

func seedSuppliers(db *gorm.DB) error {
	for _, supplier := range stores.DefaultSuppliers() {
		var existing models.Supplier
		err := db.Where("name = ?", supplier.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := models.SupplierFromDomain(supplier)
		row.ID = 0
		if err := db.Create(row).Error; err != nil {
			return err
		}
		log.Printf("   Created supplier: %s", supplier.Name)
	}
	return nil
}
