package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/kvstore"
	"github.com/sangkips/pos-ledger/internal/infrastructure/repository"
	"github.com/sangkips/pos-ledger/pkg/printer"
	"github.com/stretchr/testify/require"
)

// recordingOperator captures published warnings
type recordingOperator struct {
	mu       sync.Mutex
	warnings []entity.DeductionWarning
}

func (o *recordingOperator) Publish(_ context.Context, warnings []entity.DeductionWarning) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, warnings...)
}

func (o *recordingOperator) reasons() []entity.WarningReason {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]entity.WarningReason, len(o.warnings))
	for i, w := range o.warnings {
		out[i] = w.Reason
	}
	return out
}

type fixture struct {
	store     *kvstore.MemoryStore
	saleRepo  domainRepo.SaleRepository
	inventory *InventoryService
	catalog   *CatalogService
	orders    *OrderService
	sales     *SaleService
	live      *ReportService
	snapshot  *ReportService
	receipt   *ReceiptService
	operator  *recordingOperator
	printer   *printer.Recorder
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	enforceStock bool
	clock        func() time.Time
}

func allowShortfall() fixtureOption {
	return func(c *fixtureConfig) { c.enforceStock = false }
}

func withFixedClock(t time.Time) fixtureOption {
	return func(c *fixtureConfig) { c.clock = func() time.Time { return t } }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	cfg := &fixtureConfig{enforceStock: true}
	for _, opt := range opts {
		opt(cfg)
	}

	store := kvstore.NewMemoryStore()
	ingredientRepo := repository.NewIngredientRepository(store, nil)
	productRepo := repository.NewProductRepository(store, nil)
	orderRepo := repository.NewOrderRepository(store, nil)
	saleRepo := repository.NewSaleRepository(store, nil)

	op := &recordingOperator{}
	rec := printer.NewRecorder()

	var saleOpts []SaleServiceOption
	if cfg.clock != nil {
		saleOpts = append(saleOpts, WithClock(cfg.clock))
	}

	return &fixture{
		store:     store,
		saleRepo:  saleRepo,
		inventory: NewInventoryService(ingredientRepo, nil),
		catalog:   NewCatalogService(productRepo, nil),
		orders:    NewOrderService(orderRepo, productRepo, nil),
		sales:     NewSaleService(orderRepo, productRepo, ingredientRepo, saleRepo, op, cfg.enforceStock, nil, saleOpts...),
		live:      NewReportService(saleRepo, productRepo, ingredientRepo, enum.CostBasisLive, nil),
		snapshot:  NewReportService(saleRepo, productRepo, ingredientRepo, enum.CostBasisSnapshot, nil),
		receipt: NewReceiptService(rec, saleRepo,
			entity.ReceiptHeader{StoreName: "Corner Cafe", Address: "1 Main St"}, 32, nil),
		operator: op,
		printer:  rec,
	}
}

func (f *fixture) addIngredient(t *testing.T, name string, qty, reorder float64) *entity.Ingredient {
	t.Helper()
	ing, err := f.inventory.AddIngredient(context.Background(), &AddIngredientInput{
		Name: name, Unit: "g", Quantity: qty, ReorderLevel: reorder,
	})
	require.NoError(t, err)
	return ing
}

func (f *fixture) quantityOf(t *testing.T, id uuid.UUID) float64 {
	t.Helper()
	ing, err := f.inventory.GetIngredient(context.Background(), id)
	require.NoError(t, err)
	return ing.Quantity
}

// cafe is the coffee-bar catalog most tests run against
type cafe struct {
	beans, whole, soy *entity.Ingredient
	latte             *entity.Product
	milkGroup         uuid.UUID
	wholeOpt, soyOpt  uuid.UUID
}

// newCafe stocks 1000g beans and 500ml soy milk and offers a Latte at 4.50
// (cost 1.20) with a Milk group: Whole free, Soy +0.75 (cost +0.25).
func (f *fixture) newCafe(t *testing.T) *cafe {
	t.Helper()
	c := &cafe{
		beans: f.addIngredient(t, "Coffee Beans", 1000, 100),
		whole: f.addIngredient(t, "Whole Milk", 2000, 200),
		soy:   f.addIngredient(t, "Soy Milk", 500, 150),
	}
	latte, err := f.catalog.AddProduct(context.Background(), &CreateProductInput{
		Name: "Latte", Category: "Coffee", SKU: "LAT-001", BasePrice: 4.5, BaseCost: 1.2,
		Recipe: []UsageInput{{IngredientID: c.beans.ID.String(), QuantityUsed: 18}},
		ModifierGroups: []ModifierGroupInput{{
			Name: "Milk",
			Options: []ModifierOptionInput{
				{Name: "Whole", IngredientUsages: []UsageInput{{IngredientID: c.whole.ID.String(), QuantityUsed: 200}}},
				{Name: "Soy", AdditionalPrice: 0.75, AdditionalCost: 0.25,
					IngredientUsages: []UsageInput{{IngredientID: c.soy.ID.String(), QuantityUsed: 200}}},
			},
		}},
	})
	require.NoError(t, err)
	c.latte = latte
	c.milkGroup = latte.ModifierGroups[0].ID
	c.wholeOpt = latte.ModifierGroups[0].Options[0].ID
	c.soyOpt = latte.ModifierGroups[0].Options[1].ID
	return c
}

func (c *cafe) soyLatte() []ModifierSelection {
	return []ModifierSelection{{ModifierGroupID: c.milkGroup, OptionID: c.soyOpt}}
}
