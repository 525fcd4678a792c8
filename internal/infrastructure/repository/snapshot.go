package repository

import (
	"context"
	"encoding/json"
	"sync"

	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"go.uber.org/zap"
)

// Keys the aggregates are stored under.
const (
	KeyIngredients     = "ingredients"
	KeyProducts        = "products"
	KeyCurrentOrder    = "current_order"
	KeySalesHistory    = "sales_history"
	KeyIdempotencyKeys = "idempotency_keys"
)

// snapshot holds one aggregate in memory and writes it through to the
// key-value store as JSON. Store failures are logged and never surface to
// callers: the in-memory state stays authoritative.
type snapshot[T any] struct {
	mu     sync.RWMutex
	key    string
	store  domainRepo.KeyValueStore
	log    *zap.Logger
	data   T
	loaded bool
}

func newSnapshot[T any](store domainRepo.KeyValueStore, key string, log *zap.Logger) *snapshot[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &snapshot[T]{key: key, store: store, log: log}
}

// ensure loads the stored value once. Caller holds mu for writing.
func (s *snapshot[T]) ensure(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.log.Error("failed to load aggregate, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return
	}
	if !found || raw == "" {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Error("failed to decode aggregate, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return
	}
	s.data = v
}

func (s *snapshot[T]) persist(ctx context.Context) {
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.log.Error("failed to encode aggregate", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.store.Save(ctx, s.key, string(raw)); err != nil {
		s.log.Error("failed to persist aggregate", zap.String("key", s.key), zap.Error(err))
	}
}

// read runs fn against the loaded value without persisting.
func (s *snapshot[T]) read(ctx context.Context, fn func(T)) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		fn(s.data)
		return
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(ctx)
	fn(s.data)
}

// write runs fn against the value and persists it when fn succeeds.
func (s *snapshot[T]) write(ctx context.Context, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(ctx)
	if err := fn(&s.data); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}
