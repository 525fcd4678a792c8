package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"go.uber.org/zap"
)

type orderRepository struct {
	snap *snapshot[*entity.Order]
}

// NewOrderRepository creates the store for the single current order
func NewOrderRepository(store domainRepo.KeyValueStore, log *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{snap: newSnapshot[*entity.Order](store, KeyCurrentOrder, log)}
}

// GetCurrent returns a copy of the current order, starting one if none exists
func (r *orderRepository) GetCurrent(ctx context.Context) (*entity.Order, error) {
	var current *entity.Order
	r.snap.read(ctx, func(o *entity.Order) {
		if o != nil {
			current = o.Clone()
		}
	})
	if current != nil {
		return current, nil
	}

	order := entity.NewOrder()
	if err := r.Save(ctx, order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

func (r *orderRepository) Save(ctx context.Context, order *entity.Order) error {
	return r.snap.write(ctx, func(o **entity.Order) error {
		*o = order.Clone()
		return nil
	})
}
