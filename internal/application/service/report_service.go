package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/money"
	"go.uber.org/zap"
)

const unknownProductName = "Unknown Product"

// ReportService aggregates sales history and ledger state
type ReportService struct {
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	costBasis      enum.CostBasis
	log            *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	costBasis enum.CostBasis,
	log *zap.Logger,
) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	if costBasis == "" {
		costBasis = enum.CostBasisLive
	}
	return &ReportService{
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		costBasis:      costBasis,
		log:            log,
	}
}

// ReportPeriod echoes the requested range; AllTime is set when no bound was given
type ReportPeriod struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	AllTime   bool   `json:"all_time"`
}

// TopSellingItem is one product's contribution to a sales summary
type TopSellingItem struct {
	ProductID        uuid.UUID   `json:"product_id"`
	ProductName      string      `json:"product_name"`
	QuantitySold     int         `json:"quantity_sold"`
	RevenueGenerated money.Cents `json:"revenue_generated"`
	COGS             money.Cents `json:"cogs"`
	Profit           money.Cents `json:"profit"`
}

// SalesSummaryReport represents the sales summary
type SalesSummaryReport struct {
	Period               ReportPeriod           `json:"period"`
	CostBasis            enum.CostBasis         `json:"cost_basis"`
	TotalSalesCount      int                    `json:"total_sales_count"`
	TotalRevenue         money.Cents            `json:"total_revenue"`
	TotalDiscounts       money.Cents            `json:"total_discounts"`
	TotalCOGS            money.Cents            `json:"total_cogs"`
	TotalProfit          money.Cents            `json:"total_profit"`
	TopSellingItems      []TopSellingItem       `json:"top_selling_items"`
	SalesByPaymentMethod map[string]money.Cents `json:"sales_by_payment_method"`
}

// StockLine is an ingredient entry in the inventory status report
type StockLine struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Quantity     float64   `json:"quantity"`
	ReorderLevel float64   `json:"reorder_level"`
}

// UnmakeableProduct is a product whose recipe cannot currently be made
type UnmakeableProduct struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Missing     []string  `json:"missing_ingredient_ids,omitempty"`
	OutOfStock  []string  `json:"out_of_stock_ingredients,omitempty"`
}

// InventoryStatusReport represents the inventory status
type InventoryStatusReport struct {
	LowStockIngredients   []StockLine         `json:"low_stock_ingredients"`
	OutOfStockIngredients []StockLine         `json:"out_of_stock_ingredients"`
	SufficientStockCount  int                 `json:"sufficient_stock_count"`
	TotalIngredientCount  int                 `json:"total_ingredient_count"`
	UnmakeableProducts    []UnmakeableProduct `json:"unmakeable_products"`
}

// ProductProfit is one row of the profit-by-product report
type ProductProfit struct {
	ProductID    uuid.UUID   `json:"product_id"`
	ProductName  string      `json:"product_name"`
	QuantitySold int         `json:"quantity_sold"`
	TotalRevenue money.Cents `json:"total_revenue"`
	TotalCOGS    money.Cents `json:"total_cogs"`
	TotalProfit  money.Cents `json:"total_profit"`
	ProfitMargin float64     `json:"profit_margin"`
}

// productAggregate accumulates per-product figures in first-seen order.
type productAggregate struct {
	order []uuid.UUID
	rows  map[uuid.UUID]*ProductProfit
}

func newProductAggregate() *productAggregate {
	return &productAggregate{rows: make(map[uuid.UUID]*ProductProfit)}
}

func (a *productAggregate) row(id uuid.UUID, name string) *ProductProfit {
	r, ok := a.rows[id]
	if !ok {
		r = &ProductProfit{ProductID: id, ProductName: name}
		a.rows[id] = r
		a.order = append(a.order, id)
	}
	return r
}

func (a *productAggregate) list() []ProductProfit {
	out := make([]ProductProfit, 0, len(a.order))
	for _, id := range a.order {
		r := a.rows[id]
		r.TotalProfit = r.TotalRevenue - r.TotalCOGS
		if r.TotalRevenue > 0 {
			r.ProfitMargin = float64(r.TotalProfit) / float64(r.TotalRevenue) * 100
		}
		out = append(out, *r)
	}
	return out
}

// catalogIndex caches the current catalog for one report run.
type catalogIndex map[uuid.UUID]*entity.Product

func (s *ReportService) loadCatalog(ctx context.Context) (catalogIndex, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(catalogIndex, len(products))
	for i := range products {
		idx[products[i].ID] = &products[i]
	}
	return idx, nil
}

func (c catalogIndex) name(id uuid.UUID) string {
	if p, ok := c[id]; ok {
		return p.Name
	}
	return unknownProductName
}

// unitCost prices one sold unit according to the configured cost basis. On the
// live basis a deleted product costs 0, and an option that has since been
// removed from the product keeps the cost captured on the line.
func (s *ReportService) unitCost(item *entity.SaleLineItem, catalog catalogIndex) money.Cents {
	if s.costBasis == enum.CostBasisSnapshot {
		return item.UnitCost
	}

	product, ok := catalog[item.ProductID]
	if !ok {
		s.log.Error("product not found for cost calculation, using zero cost",
			zap.String("product_id", item.ProductID.String()),
			zap.String("product_name", item.ProductName))
		return 0
	}
	cost := product.BaseCost
	for _, m := range item.ChosenModifiers {
		if opt := product.FindOptionAnyGroup(m.OptionID); opt != nil {
			cost += opt.AdditionalCost
		} else {
			cost += m.AdditionalCost
		}
	}
	return cost
}

func periodOf(r entity.DateRange) ReportPeriod {
	if r.IsAllTime() {
		return ReportPeriod{AllTime: true}
	}
	p := ReportPeriod{}
	if !r.Start.IsZero() {
		p.StartDate = r.Start.Format("2006-01-02")
	}
	if !r.End.IsZero() {
		p.EndDate = r.End.Format("2006-01-02")
	}
	return p
}

// aggregate folds every sold line into per-product rows and returns total COGS.
func (s *ReportService) aggregate(sales []entity.SaleTransaction, catalog catalogIndex) (*productAggregate, money.Cents) {
	agg := newProductAggregate()
	var totalCOGS money.Cents
	for i := range sales {
		for j := range sales[i].Items {
			item := &sales[i].Items[j]
			cogs := s.unitCost(item, catalog).Mul(item.Quantity)
			totalCOGS += cogs

			r := agg.row(item.ProductID, catalog.name(item.ProductID))
			r.QuantitySold += item.Quantity
			r.TotalRevenue += item.TotalItemPrice
			r.TotalCOGS += cogs
		}
	}
	return agg, totalCOGS
}

// SalesSummary aggregates sales inside the range
func (s *ReportService) SalesSummary(ctx context.Context, r entity.DateRange) (*SalesSummaryReport, error) {
	sales, err := s.saleRepo.List(ctx, r)
	if err != nil {
		return nil, err
	}
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	report := &SalesSummaryReport{
		Period:               periodOf(r),
		CostBasis:            s.costBasis,
		TotalSalesCount:      len(sales),
		SalesByPaymentMethod: make(map[string]money.Cents),
	}
	for i := range sales {
		report.TotalRevenue += sales[i].Total
		report.TotalDiscounts += sales[i].Discount
		report.SalesByPaymentMethod[sales[i].PaymentMethod] += sales[i].Total
	}

	agg, totalCOGS := s.aggregate(sales, catalog)
	report.TotalCOGS = totalCOGS
	report.TotalProfit = report.TotalRevenue - totalCOGS

	rows := agg.list()
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].TotalRevenue > rows[b].TotalRevenue })
	report.TopSellingItems = make([]TopSellingItem, len(rows))
	for i, row := range rows {
		report.TopSellingItems[i] = TopSellingItem{
			ProductID:        row.ProductID,
			ProductName:      row.ProductName,
			QuantitySold:     row.QuantitySold,
			RevenueGenerated: row.TotalRevenue,
			COGS:             row.TotalCOGS,
			Profit:           row.TotalProfit,
		}
	}
	return report, nil
}

// ProfitByProduct reports per-product profit inside the range, highest profit first
func (s *ReportService) ProfitByProduct(ctx context.Context, r entity.DateRange) ([]ProductProfit, error) {
	sales, err := s.saleRepo.List(ctx, r)
	if err != nil {
		return nil, err
	}
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	agg, _ := s.aggregate(sales, catalog)
	rows := agg.list()
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].TotalProfit > rows[b].TotalProfit })
	return rows, nil
}

func stockLine(ing *entity.Ingredient) StockLine {
	return StockLine{
		ID:           ing.ID,
		Name:         ing.Name,
		Unit:         ing.Unit,
		Quantity:     ing.Quantity,
		ReorderLevel: ing.ReorderLevel,
	}
}

// InventoryStatus partitions the ledger into out-of-stock, low and sufficient
// ingredients and lists products whose base recipe cannot be made right now.
func (s *ReportService) InventoryStatus(ctx context.Context) (*InventoryStatusReport, error) {
	ingredients, err := s.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &InventoryStatusReport{
		LowStockIngredients:   []StockLine{},
		OutOfStockIngredients: []StockLine{},
		UnmakeableProducts:    []UnmakeableProduct{},
		TotalIngredientCount:  len(ingredients),
	}
	byID := make(map[uuid.UUID]*entity.Ingredient, len(ingredients))
	for i := range ingredients {
		ing := &ingredients[i]
		byID[ing.ID] = ing
		switch ing.StockStatus() {
		case enum.StockStatusOut:
			report.OutOfStockIngredients = append(report.OutOfStockIngredients, stockLine(ing))
		case enum.StockStatusLow:
			report.LowStockIngredients = append(report.LowStockIngredients, stockLine(ing))
		default:
			report.SufficientStockCount++
		}
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		var missing, out []string
		for _, u := range p.Recipe {
			ing, ok := byID[u.IngredientID]
			switch {
			case !ok:
				missing = append(missing, u.IngredientID.String())
			case u.QuantityUsed > 0 && ing.Quantity < u.QuantityUsed:
				out = append(out, ing.Name)
			}
		}
		if len(missing) > 0 || len(out) > 0 {
			report.UnmakeableProducts = append(report.UnmakeableProducts, UnmakeableProduct{
				ProductID:   p.ID,
				ProductName: p.Name,
				Missing:     missing,
				OutOfStock:  out,
			})
		}
	}
	return report, nil
}
