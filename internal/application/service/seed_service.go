package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SeedDemoData loads a small coffee-bar catalog when the ledger is empty.
// A ledger that already holds ingredients is left untouched.
func SeedDemoData(ctx context.Context, inventory *InventoryService, catalog *CatalogService, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	existing, err := inventory.ListIngredients(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug("ledger not empty, skipping demo seed", zap.Int("ingredients", len(existing)))
		return nil
	}

	log.Info("seeding demo data")

	ingredients := []AddIngredientInput{
		{Name: "Coffee Beans", Unit: "g", Quantity: 1000, ReorderLevel: 200, SupplierInfo: "Roastery Co."},
		{Name: "Whole Milk", Unit: "ml", Quantity: 5000, ReorderLevel: 1000},
		{Name: "Soy Milk", Unit: "ml", Quantity: 2000, ReorderLevel: 500},
		{Name: "Oat Milk", Unit: "ml", Quantity: 2000, ReorderLevel: 500},
		{Name: "Vanilla Syrup", Unit: "ml", Quantity: 750, ReorderLevel: 150},
		{Name: "Paper Cup", Unit: "pcs", Quantity: 300, ReorderLevel: 50},
	}
	ids := make(map[string]string, len(ingredients))
	for i := range ingredients {
		ing, err := inventory.AddIngredient(ctx, &ingredients[i])
		if err != nil {
			return fmt.Errorf("seed ingredient %s: %w", ingredients[i].Name, err)
		}
		ids[ing.Name] = ing.ID.String()
	}

	milkGroup := ModifierGroupInput{
		Name: "Milk",
		Options: []ModifierOptionInput{
			{Name: "Whole", IngredientUsages: []UsageInput{{IngredientID: ids["Whole Milk"], QuantityUsed: 200}}},
			{Name: "Soy", AdditionalCost: 0.3, AdditionalPrice: 0.5, IngredientUsages: []UsageInput{{IngredientID: ids["Soy Milk"], QuantityUsed: 200}}},
			{Name: "Oat", AdditionalCost: 0.35, AdditionalPrice: 0.6, IngredientUsages: []UsageInput{{IngredientID: ids["Oat Milk"], QuantityUsed: 200}}},
		},
	}
	extrasGroup := ModifierGroupInput{
		Name: "Extras",
		Options: []ModifierOptionInput{
			{Name: "Extra Shot", AdditionalCost: 0.25, AdditionalPrice: 0.75, IngredientUsages: []UsageInput{{IngredientID: ids["Coffee Beans"], QuantityUsed: 18}}},
			{Name: "Vanilla", AdditionalCost: 0.1, AdditionalPrice: 0.5, IngredientUsages: []UsageInput{{IngredientID: ids["Vanilla Syrup"], QuantityUsed: 15}}},
		},
	}

	products := []CreateProductInput{
		{
			Name: "Espresso", Category: "Coffee", SKU: "ESP-001", BasePrice: 2.5, BaseCost: 0.6,
			Recipe: []UsageInput{
				{IngredientID: ids["Coffee Beans"], QuantityUsed: 18},
				{IngredientID: ids["Paper Cup"], QuantityUsed: 1},
			},
			ModifierGroups: []ModifierGroupInput{extrasGroup},
		},
		{
			Name: "Latte", Category: "Coffee", SKU: "LAT-001", BasePrice: 4.0, BaseCost: 1.1,
			Recipe: []UsageInput{
				{IngredientID: ids["Coffee Beans"], QuantityUsed: 18},
				{IngredientID: ids["Paper Cup"], QuantityUsed: 1},
			},
			ModifierGroups: []ModifierGroupInput{milkGroup, extrasGroup},
		},
		{
			Name: "Cappuccino", Category: "Coffee", SKU: "CAP-001", BasePrice: 3.75, BaseCost: 1.0,
			Recipe: []UsageInput{
				{IngredientID: ids["Coffee Beans"], QuantityUsed: 18},
				{IngredientID: ids["Paper Cup"], QuantityUsed: 1},
			},
			ModifierGroups: []ModifierGroupInput{milkGroup, extrasGroup},
		},
	}
	for i := range products {
		if _, err := catalog.AddProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}

	log.Info("demo data seeded",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("products", len(products)))
	return nil
}
