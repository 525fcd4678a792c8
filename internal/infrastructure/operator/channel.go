package operator

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/pkg/email"
	"go.uber.org/zap"
)

// DefaultCapacity is how many recent warnings are kept for the operator view
const DefaultCapacity = 200

// AlertSender delivers a batch of alerts out of band
type AlertSender interface {
	SendOperatorAlert(toEmail, saleRef string, alerts []email.Alert) error
}

// Notice is a published warning with the time it was raised
type Notice struct {
	entity.DeductionWarning
	RaisedAt time.Time `json:"raised_at"`
}

// Channel logs every warning, keeps the most recent ones in memory and
// optionally mails each batch to the operator.
type Channel struct {
	log      *zap.Logger
	sender   AlertSender
	to       string
	capacity int

	mu     sync.RWMutex
	recent []Notice
	wg     sync.WaitGroup
	now    func() time.Time
}

// Option customizes a Channel
type Option func(*Channel)

// WithEmail mails every published batch to the given address
func WithEmail(sender AlertSender, to string) Option {
	return func(c *Channel) {
		c.sender = sender
		c.to = to
	}
}

// WithCapacity bounds the recent list
func WithCapacity(n int) Option {
	return func(c *Channel) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// NewChannel creates an operator channel
func NewChannel(log *zap.Logger, opts ...Option) *Channel {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Channel{
		log:      log.Named("operator"),
		capacity: DefaultCapacity,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Publish records a batch of warnings. Email delivery runs in the background
// and its failures are only logged.
func (c *Channel) Publish(_ context.Context, warnings []entity.DeductionWarning) {
	if len(warnings) == 0 {
		return
	}
	raised := c.now()

	c.mu.Lock()
	for _, w := range warnings {
		c.recent = append(c.recent, Notice{DeductionWarning: w, RaisedAt: raised})
	}
	if over := len(c.recent) - c.capacity; over > 0 {
		c.recent = append(c.recent[:0:0], c.recent[over:]...)
	}
	c.mu.Unlock()

	for _, w := range warnings {
		c.log.Warn(w.Message,
			zap.String("reason", string(w.Reason)),
			zap.String("sale_id", w.SaleID),
			zap.String("line_id", w.LineID),
			zap.String("product_id", w.ProductID),
			zap.String("ingredient_id", w.IngredientID))
	}

	if c.sender == nil || c.to == "" {
		return
	}
	alerts := make([]email.Alert, len(warnings))
	for i, w := range warnings {
		alerts[i] = email.Alert{Reason: string(w.Reason), Message: w.Message}
	}
	saleRef := warnings[0].SaleID

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.sender.SendOperatorAlert(c.to, saleRef, alerts); err != nil {
			c.log.Error("failed to email operator alert", zap.Error(err), zap.String("to", c.to))
		}
	}()
}

// Recent returns retained warnings, newest first
func (c *Channel) Recent(limit int) []Notice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.recent)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Notice, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, c.recent[i])
	}
	return out
}

// Wait blocks until background deliveries have finished
func (c *Channel) Wait() {
	c.wg.Wait()
}
