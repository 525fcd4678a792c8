package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"go.uber.org/zap"
)

type productRepository struct {
	snap *snapshot[[]*entity.Product]
}

// NewProductRepository creates the catalog store
func NewProductRepository(store domainRepo.KeyValueStore, log *zap.Logger) domainRepo.ProductRepository {
	return &productRepository{snap: newSnapshot[[]*entity.Product](store, KeyProducts, log)}
}

func indexOfProduct(list []*entity.Product, id uuid.UUID) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *productRepository) findBy(ctx context.Context, match func(*entity.Product) bool) *entity.Product {
	var found *entity.Product
	r.snap.read(ctx, func(list []*entity.Product) {
		for _, p := range list {
			if match(p) {
				found = p.Clone()
				return
			}
		}
	})
	return found
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.snap.write(ctx, func(list *[]*entity.Product) error {
		*list = append(*list, product.Clone())
		return nil
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.findBy(ctx, func(p *entity.Product) bool { return p.ID == id }), nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	key := utils.NormalizeKey(name)
	return r.findBy(ctx, func(p *entity.Product) bool { return utils.NormalizeKey(p.Name) == key }), nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	key := utils.NormalizeKey(sku)
	if key == "" {
		return nil, nil
	}
	return r.findBy(ctx, func(p *entity.Product) bool { return utils.NormalizeKey(p.SKU) == key }), nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now().UTC()
	return r.snap.write(ctx, func(list *[]*entity.Product) error {
		i := indexOfProduct(*list, product.ID)
		if i < 0 {
			return apperror.NewNotFoundError("Product")
		}
		(*list)[i] = product.Clone()
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.snap.write(ctx, func(list *[]*entity.Product) error {
		i := indexOfProduct(*list, id)
		if i < 0 {
			return apperror.NewNotFoundError("Product")
		}
		*list = append((*list)[:i], (*list)[i+1:]...)
		return nil
	})
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	r.snap.read(ctx, func(list []*entity.Product) {
		out = make([]entity.Product, len(list))
		for i, p := range list {
			out[i] = *p.Clone()
		}
	})
	return out, nil
}
