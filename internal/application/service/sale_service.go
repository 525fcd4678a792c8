package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"github.com/sangkips/pos-ledger/pkg/pagination"
	"go.uber.org/zap"
)

// stockTolerance absorbs float drift when comparing requirements with stock
const stockTolerance = 1e-9

// OperatorChannel receives warnings that must reach a human but do not fail a sale.
type OperatorChannel interface {
	Publish(ctx context.Context, warnings []entity.DeductionWarning)
}

// SaleService finalizes the current order into the sales history
type SaleService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	saleRepo       repository.SaleRepository
	operator       OperatorChannel
	enforceStock   bool
	log            *zap.Logger
	now            func() time.Time
}

// SaleServiceOption customizes a SaleService
type SaleServiceOption func(*SaleService)

// WithClock overrides the sale timestamp source
func WithClock(now func() time.Time) SaleServiceOption {
	return func(s *SaleService) { s.now = now }
}

// NewSaleService creates a new sale service. With enforceStock set, a sale that
// would drive any ingredient below zero is refused.
func NewSaleService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	saleRepo repository.SaleRepository,
	operator OperatorChannel,
	enforceStock bool,
	log *zap.Logger,
	opts ...SaleServiceOption,
) *SaleService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SaleService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		saleRepo:       saleRepo,
		operator:       operator,
		enforceStock:   enforceStock,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FinalizeResult is a completed sale and the non-fatal warnings it raised
type FinalizeResult struct {
	Sale     *entity.SaleTransaction   `json:"sale"`
	Warnings []entity.DeductionWarning `json:"warnings"`
}

// deductionPlan is the outcome of the read-only first phase of finalize.
type deductionPlan struct {
	required     map[uuid.UUID]float64
	requirements []entity.StockRequirement
	unitCosts    map[uuid.UUID]money.Cents
	warnings     []entity.DeductionWarning
}

func (p *deductionPlan) shortfalls() []entity.StockRequirement {
	var out []entity.StockRequirement
	for _, r := range p.requirements {
		if !r.Sufficient() {
			out = append(out, r)
		}
	}
	return out
}

// plan aggregates the ingredient requirement of every line: the product's
// current recipe plus each chosen modifier's usages, times line quantity.
func (s *SaleService) plan(ctx context.Context, order *entity.Order) (*deductionPlan, error) {
	ingredients, err := s.ingredientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	p := &deductionPlan{
		required:  make(map[uuid.UUID]float64),
		unitCosts: make(map[uuid.UUID]money.Cents, len(order.Items)),
	}

	for _, line := range order.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			p.unitCosts[line.ID] = line.ModifierCost()
			p.warnings = append(p.warnings, entity.DeductionWarning{
				LineID:    line.ID.String(),
				ProductID: line.ProductID.String(),
				Reason:    entity.WarningProductMissing,
				Message:   fmt.Sprintf("product %q no longer exists; no stock deducted for this line", line.ProductName),
			})
			continue
		}
		p.unitCosts[line.ID] = product.BaseCost + line.ModifierCost()

		usages := make([]entity.IngredientUsage, 0, len(product.Recipe))
		usages = append(usages, product.Recipe...)
		for _, m := range line.ChosenModifiers {
			usages = append(usages, m.IngredientUsages...)
		}

		for _, u := range usages {
			if _, ok := byID[u.IngredientID]; !ok {
				p.warnings = append(p.warnings, entity.DeductionWarning{
					LineID:       line.ID.String(),
					ProductID:    product.ID.String(),
					IngredientID: u.IngredientID.String(),
					Reason:       entity.WarningIngredientMissing,
					Message:      fmt.Sprintf("ingredient %s used by %q no longer exists; deduction skipped", u.IngredientID, product.Name),
				})
				continue
			}
			p.required[u.IngredientID] += u.QuantityUsed * float64(line.Quantity)
		}
	}

	for _, ing := range ingredients {
		need, ok := p.required[ing.ID]
		if !ok {
			continue
		}
		shortfall := need - ing.Quantity
		if shortfall < stockTolerance {
			shortfall = 0
		}
		p.requirements = append(p.requirements, entity.StockRequirement{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Unit:           ing.Unit,
			Required:       need,
			Available:      ing.Quantity,
			Shortfall:      shortfall,
		})
	}
	return p, nil
}

// CheckAvailability reports what the current order would consume, without changing anything
func (s *SaleService) CheckAvailability(ctx context.Context) ([]entity.StockRequirement, []entity.DeductionWarning, error) {
	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.plan(ctx, order)
	if err != nil {
		return nil, nil, err
	}
	reqs := p.requirements
	if reqs == nil {
		reqs = []entity.StockRequirement{}
	}
	warnings := p.warnings
	if warnings == nil {
		warnings = []entity.DeductionWarning{}
	}
	return reqs, warnings, nil
}

func insufficientStockError(shortfalls []entity.StockRequirement) error {
	details := make([]apperror.FieldError, len(shortfalls))
	for i, r := range shortfalls {
		details[i] = apperror.FieldError{
			Field:   r.IngredientName,
			Message: fmt.Sprintf("requires %g %s, %g available", r.Required, r.Unit, r.Available),
		}
	}
	return apperror.NewInsufficientStockError(details)
}

// Finalize turns the current order into a sale. Ingredient requirements for the
// whole order are computed and validated first; the ledger is then debited in
// one batch, the sale recorded and a fresh order started.
func (s *SaleService) Finalize(ctx context.Context, paymentMethod string) (*FinalizeResult, error) {
	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if order.IsEmpty() {
		return nil, apperror.ErrEmptyOrder
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, apperror.ErrMissingPaymentMethod
	}

	p, err := s.plan(ctx, order)
	if err != nil {
		return nil, err
	}

	shortfalls := p.shortfalls()
	if s.enforceStock && len(shortfalls) > 0 {
		return nil, insufficientStockError(shortfalls)
	}
	for _, r := range shortfalls {
		p.warnings = append(p.warnings, entity.DeductionWarning{
			IngredientID: r.IngredientID.String(),
			Reason:       entity.WarningStockClamped,
			Message:      fmt.Sprintf("%s short by %g %s; stock clamped at zero", r.IngredientName, r.Shortfall, r.Unit),
		})
	}

	deltas := make(map[uuid.UUID]float64, len(p.required))
	for id, need := range p.required {
		if need > 0 {
			deltas[id] = -need
		}
	}
	insufficient, err := s.ingredientRepo.ApplyDeltas(ctx, deltas, !s.enforceStock)
	if err != nil {
		return nil, fmt.Errorf("apply stock deductions: %w", err)
	}
	if len(insufficient) > 0 {
		return nil, insufficientStockError(p.shortfalls())
	}

	sale := &entity.SaleTransaction{
		ID:            uuid.New(),
		Date:          s.now(),
		Items:         make([]entity.SaleLineItem, len(order.Items)),
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		Total:         order.Total,
		PaymentMethod: paymentMethod,
		OrderID:       order.ID,
	}
	for i, line := range order.Items {
		sale.Items[i] = entity.SaleLineItem{OrderLineItem: line.Clone(), UnitCost: p.unitCosts[line.ID]}
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, entity.NewOrder()); err != nil {
		return nil, err
	}

	warnings := append(p.warnings, s.lowStockNotices(ctx, deltas)...)
	for i := range warnings {
		warnings[i].SaleID = sale.ID.String()
	}
	if len(warnings) > 0 && s.operator != nil {
		s.operator.Publish(ctx, warnings)
	}
	if warnings == nil {
		warnings = []entity.DeductionWarning{}
	}

	s.log.Info("sale finalized",
		zap.String("sale_id", sale.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Stringer("total", sale.Total),
		zap.String("payment_method", paymentMethod),
		zap.Int("warnings", len(warnings)))

	return &FinalizeResult{Sale: sale, Warnings: warnings}, nil
}

// lowStockNotices flags touched ingredients that are now at or below reorder level.
func (s *SaleService) lowStockNotices(ctx context.Context, deltas map[uuid.UUID]float64) []entity.DeductionWarning {
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })

	var notices []entity.DeductionWarning
	for _, id := range ids {
		ing, err := s.ingredientRepo.GetByID(ctx, id)
		if err != nil || ing == nil || !ing.IsLowStock() {
			continue
		}
		notices = append(notices, entity.DeductionWarning{
			IngredientID: id.String(),
			Reason:       entity.WarningLowStock,
			Message:      fmt.Sprintf("%s is low: %g %s left (reorder at %g)", ing.Name, ing.Quantity, ing.Unit, ing.ReorderLevel),
		})
	}
	return notices
}

// GetSale returns one sale from history
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleTransaction, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a page of history, newest first
func (s *SaleService) ListSales(ctx context.Context, r entity.DateRange, params pagination.Params) (*pagination.Result[entity.SaleTransaction], error) {
	sales, err := s.saleRepo.List(ctx, r)
	if err != nil {
		return nil, err
	}
	return pagination.Slice(sales, params), nil
}
