package repository

import (
	"context"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"go.uber.org/zap"
)

type idempotencyRepository struct {
	snap *snapshot[map[string]entity.IdempotencyKey]
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(store domainRepo.KeyValueStore, log *zap.Logger) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{snap: newSnapshot[map[string]entity.IdempotencyKey](store, KeyIdempotencyKeys, log)}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var found *entity.IdempotencyKey
	r.snap.read(ctx, func(keys map[string]entity.IdempotencyKey) {
		if k, ok := keys[key]; ok {
			found = &k
		}
	})
	return found, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now().UTC()
	}
	return r.snap.write(ctx, func(keys *map[string]entity.IdempotencyKey) error {
		if *keys == nil {
			*keys = make(map[string]entity.IdempotencyKey)
		}
		(*keys)[ikey.Key] = *ikey
		return nil
	})
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int, error) {
	removed := 0
	err := r.snap.write(ctx, func(keys *map[string]entity.IdempotencyKey) error {
		for k, v := range *keys {
			if v.IsExpired() {
				delete(*keys, k)
				removed++
			}
		}
		return nil
	})
	return removed, err
}
