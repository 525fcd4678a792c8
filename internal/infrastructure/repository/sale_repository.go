package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"go.uber.org/zap"
)

type saleRepository struct {
	snap *snapshot[[]*entity.SaleTransaction]
}

// NewSaleRepository creates the sales history store, kept newest first
func NewSaleRepository(store domainRepo.KeyValueStore, log *zap.Logger) domainRepo.SaleRepository {
	return &saleRepository{snap: newSnapshot[[]*entity.SaleTransaction](store, KeySalesHistory, log)}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.SaleTransaction) error {
	return r.snap.write(ctx, func(list *[]*entity.SaleTransaction) error {
		*list = append([]*entity.SaleTransaction{sale.Clone()}, *list...)
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleTransaction, error) {
	var found *entity.SaleTransaction
	r.snap.read(ctx, func(list []*entity.SaleTransaction) {
		for _, s := range list {
			if s.ID == id {
				found = s.Clone()
				return
			}
		}
	})
	return found, nil
}

func (r *saleRepository) List(ctx context.Context, dr entity.DateRange) ([]entity.SaleTransaction, error) {
	out := []entity.SaleTransaction{}
	r.snap.read(ctx, func(list []*entity.SaleTransaction) {
		for _, s := range list {
			if s.InRange(dr) {
				out = append(out, *s.Clone())
			}
		}
	})
	return out, nil
}
