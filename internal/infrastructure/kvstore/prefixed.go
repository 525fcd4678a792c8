package kvstore

import (
	"context"

	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

type prefixed struct {
	prefix string
	next   domainRepo.KeyValueStore
}

// WithPrefix namespaces every key, e.g. "pos_" + "ingredients"
func WithPrefix(prefix string, next domainRepo.KeyValueStore) domainRepo.KeyValueStore {
	if prefix == "" {
		return next
	}
	return &prefixed{prefix: prefix, next: next}
}

func (p *prefixed) Load(ctx context.Context, key string) (string, bool, error) {
	return p.next.Load(ctx, p.prefix+key)
}

func (p *prefixed) Save(ctx context.Context, key, value string) error {
	return p.next.Save(ctx, p.prefix+key, value)
}
