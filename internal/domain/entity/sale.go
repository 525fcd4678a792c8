package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/money"
)

// SaleLineItem is an order line frozen into a sale, with the unit cost known at sale time
type SaleLineItem struct {
	OrderLineItem
	UnitCost money.Cents `json:"unit_cost"`
}

// SaleTransaction is an immutable record of a finalized order
type SaleTransaction struct {
	ID            uuid.UUID      `json:"id"`
	Date          time.Time      `json:"date"`
	Items         []SaleLineItem `json:"items"`
	Subtotal      money.Cents    `json:"subtotal"`
	Discount      money.Cents    `json:"discount"`
	Total         money.Cents    `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	OrderID       uuid.UUID      `json:"order_id"`
}

// Clone returns a deep copy
func (s *SaleTransaction) Clone() *SaleTransaction {
	c := *s
	c.Items = make([]SaleLineItem, len(s.Items))
	for i, item := range s.Items {
		c.Items[i] = SaleLineItem{OrderLineItem: item.OrderLineItem.Clone(), UnitCost: item.UnitCost}
	}
	return &c
}

// InRange reports whether the sale date falls inside the range
func (s *SaleTransaction) InRange(r DateRange) bool {
	return r.Contains(s.Date)
}
