package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"go.uber.org/zap"
)

// OrderService composes the current order against the catalog
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// ModifierSelection references one option inside one of a product's groups
type ModifierSelection struct {
	ModifierGroupID uuid.UUID
	OptionID        uuid.UUID
}

// CurrentOrder returns an independent copy of the current order
func (s *OrderService) CurrentOrder(ctx context.Context) (*entity.Order, error) {
	return s.orderRepo.GetCurrent(ctx)
}

// StartNewOrder discards the current order and starts an empty one
func (s *OrderService) StartNewOrder(ctx context.Context) (*entity.Order, error) {
	order := entity.NewOrder()
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// AddItem adds a configured product to the current order, merging it into an
// existing line with the same signature. Selections that do not resolve on the
// product are dropped.
func (s *OrderService) AddItem(ctx context.Context, productID uuid.UUID, quantity int, selections []ModifierSelection) (*entity.Order, error) {
	if quantity <= 0 || quantity > entity.MaxLineQuantity {
		return nil, apperror.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	chosen := resolveModifiers(product, selections)

	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	next := entity.NewOrderLineItem(product, quantity, chosen)
	if order.QuantityFor(next.Signature)+quantity > entity.MaxLineQuantity {
		return nil, apperror.Wrap(apperror.ErrInvalidQuantity,
			fmt.Sprintf("A line may hold at most %d items", entity.MaxLineQuantity))
	}
	line := order.MergeLine(next)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Debug("item added to order",
		zap.String("order_id", order.ID.String()),
		zap.String("line_id", line.ID.String()),
		zap.Int("quantity", line.Quantity))
	return order, nil
}

func resolveModifiers(product *entity.Product, selections []ModifierSelection) []entity.ChosenModifier {
	chosen := make([]entity.ChosenModifier, 0, len(selections))
	seen := make(map[uuid.UUID]bool, len(selections))
	for _, sel := range selections {
		group, option, ok := product.ResolveOption(sel.ModifierGroupID, sel.OptionID)
		if !ok || seen[option.ID] {
			continue
		}
		seen[option.ID] = true
		usages := make([]entity.IngredientUsage, len(option.IngredientUsages))
		copy(usages, option.IngredientUsages)
		chosen = append(chosen, entity.ChosenModifier{
			ModifierGroupID:   group.ID,
			ModifierGroupName: group.Name,
			OptionID:          option.ID,
			OptionName:        option.Name,
			AdditionalPrice:   option.AdditionalPrice,
			AdditionalCost:    option.AdditionalCost,
			IngredientUsages:  usages,
		})
	}
	return chosen
}

// UpdateItemQuantity replaces a line's quantity; zero or less removes the line
func (s *OrderService) UpdateItemQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (*entity.Order, error) {
	if quantity > entity.MaxLineQuantity {
		return nil, apperror.ErrInvalidQuantity
	}
	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if !order.SetLineQuantity(lineID, quantity) {
		return nil, apperror.NewNotFoundError("Order item")
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveItem drops a line if present; removing an unknown line is not an error
func (s *OrderService) RemoveItem(ctx context.Context, lineID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if !order.RemoveLine(lineID) {
		return order, nil
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ApplyDiscount replaces the order discount
func (s *OrderService) ApplyDiscount(ctx context.Context, amount float64) (*entity.Order, error) {
	if !isFinite(amount) || amount < 0 || !money.InRange(amount) {
		return nil, apperror.ErrInvalidDiscount
	}
	order, err := s.orderRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	order.ApplyDiscount(money.FromDecimal(amount))
	if order.Total < 0 {
		s.log.Warn("discount exceeds subtotal",
			zap.String("order_id", order.ID.String()),
			zap.Stringer("subtotal", order.Subtotal),
			zap.Stringer("discount", order.Discount))
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
