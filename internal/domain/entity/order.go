package entity

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/pkg/money"
)

// MaxLineQuantity caps a single order line.
const MaxLineQuantity = 1000

// ChosenModifier is a modifier option resolved at the moment it was added to an order
type ChosenModifier struct {
	ModifierGroupID   uuid.UUID         `json:"modifier_group_id"`
	ModifierGroupName string            `json:"modifier_group_name"`
	OptionID          uuid.UUID         `json:"option_id"`
	OptionName        string            `json:"option_name"`
	AdditionalPrice   money.Cents       `json:"additional_price"`
	AdditionalCost    money.Cents       `json:"additional_cost"`
	IngredientUsages  []IngredientUsage `json:"ingredient_usages"`
}

// OrderLineItem is one configured product in an order
type OrderLineItem struct {
	ID                uuid.UUID        `json:"id"`
	ProductID         uuid.UUID        `json:"product_id"`
	ProductName       string           `json:"product_name"`
	Quantity          int              `json:"quantity"`
	BasePrice         money.Cents      `json:"base_price"`
	ChosenModifiers   []ChosenModifier `json:"chosen_modifiers"`
	FinalPricePerItem money.Cents      `json:"final_price_per_item"`
	TotalItemPrice    money.Cents      `json:"total_item_price"`
	Signature         string           `json:"signature"`
}

// LineSignature is the merge key of a line: product id plus sorted option ids.
func LineSignature(productID uuid.UUID, optionIDs []uuid.UUID) string {
	ids := make([]string, len(optionIDs))
	for i, id := range optionIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return productID.String() + "_" + strings.Join(ids, ",")
}

// NewOrderLineItem prices a line from a product snapshot and its resolved modifiers.
func NewOrderLineItem(product *Product, quantity int, modifiers []ChosenModifier) OrderLineItem {
	price := product.BasePrice
	optionIDs := make([]uuid.UUID, len(modifiers))
	for i, m := range modifiers {
		price += m.AdditionalPrice
		optionIDs[i] = m.OptionID
	}
	line := OrderLineItem{
		ID:                uuid.New(),
		ProductID:         product.ID,
		ProductName:       product.Name,
		BasePrice:         product.BasePrice,
		ChosenModifiers:   modifiers,
		FinalPricePerItem: price,
		Signature:         LineSignature(product.ID, optionIDs),
	}
	line.SetQuantity(quantity)
	return line
}

// SetQuantity replaces the quantity and reprices the line
func (l *OrderLineItem) SetQuantity(quantity int) {
	l.Quantity = quantity
	l.TotalItemPrice = l.FinalPricePerItem.Mul(quantity)
}

// ModifierCost is the summed producer cost delta of the chosen modifiers
func (l *OrderLineItem) ModifierCost() money.Cents {
	var total money.Cents
	for _, m := range l.ChosenModifiers {
		total += m.AdditionalCost
	}
	return total
}

// Clone returns a deep copy
func (l OrderLineItem) Clone() OrderLineItem {
	mods := make([]ChosenModifier, len(l.ChosenModifiers))
	for i, m := range l.ChosenModifiers {
		m.IngredientUsages = cloneUsages(m.IngredientUsages)
		mods[i] = m
	}
	l.ChosenModifiers = mods
	return l
}

// Order is the single in-progress cart
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Items     []OrderLineItem `json:"items"`
	Subtotal  money.Cents     `json:"subtotal"`
	Discount  money.Cents     `json:"discount"`
	Total     money.Cents     `json:"total"`
	CreatedAt time.Time       `json:"created_at"`

	// signature -> position in Items
	bySignature map[string]int
}

// NewOrder starts an empty order
func NewOrder() *Order {
	return &Order{
		ID:        uuid.New(),
		Items:     []OrderLineItem{},
		CreatedAt: time.Now().UTC(),
	}
}

// State derives the lifecycle position from the order contents
func (o *Order) State() enum.OrderState {
	switch {
	case len(o.Items) == 0:
		return enum.OrderStateEmpty
	case o.Discount > 0:
		return enum.OrderStateDiscounted
	default:
		return enum.OrderStateBuilding
	}
}

// IsEmpty reports whether the order has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

func (o *Order) reindex() {
	o.bySignature = make(map[string]int, len(o.Items))
	for i, item := range o.Items {
		o.bySignature[item.Signature] = i
	}
}

// MergeLine adds the line, or folds its quantity into an existing line with the
// same signature. It returns the resulting line.
func (o *Order) MergeLine(line OrderLineItem) OrderLineItem {
	if o.bySignature == nil {
		o.reindex()
	}
	if idx, ok := o.bySignature[line.Signature]; ok {
		existing := &o.Items[idx]
		existing.SetQuantity(existing.Quantity + line.Quantity)
		o.Recalculate()
		return existing.Clone()
	}
	o.Items = append(o.Items, line)
	o.bySignature[line.Signature] = len(o.Items) - 1
	o.Recalculate()
	return line.Clone()
}

// QuantityFor returns the quantity already on the line with this signature
func (o *Order) QuantityFor(signature string) int {
	for i := range o.Items {
		if o.Items[i].Signature == signature {
			return o.Items[i].Quantity
		}
	}
	return 0
}

// FindLine returns the index of a line by id, or -1
func (o *Order) FindLine(lineID uuid.UUID) int {
	for i := range o.Items {
		if o.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

// SetLineQuantity replaces a line's quantity; quantity <= 0 removes the line.
// It reports whether the line existed.
func (o *Order) SetLineQuantity(lineID uuid.UUID, quantity int) bool {
	idx := o.FindLine(lineID)
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		o.removeAt(idx)
	} else {
		o.Items[idx].SetQuantity(quantity)
	}
	o.Recalculate()
	return true
}

// RemoveLine drops a line by id and reports whether it existed
func (o *Order) RemoveLine(lineID uuid.UUID) bool {
	idx := o.FindLine(lineID)
	if idx < 0 {
		return false
	}
	o.removeAt(idx)
	o.Recalculate()
	return true
}

func (o *Order) removeAt(idx int) {
	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
	o.reindex()
}

// ApplyDiscount replaces the discount
func (o *Order) ApplyDiscount(amount money.Cents) {
	o.Discount = amount
	o.Recalculate()
}

// Recalculate refreshes subtotal and total from the lines
func (o *Order) Recalculate() {
	var subtotal money.Cents
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalItemPrice)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(-o.Discount)
}

// Clone returns a deep copy
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]OrderLineItem, len(o.Items))
	for i, item := range o.Items {
		c.Items[i] = item.Clone()
	}
	c.reindex()
	return &c
}

// MarshalJSON adds the derived state to the serialized order
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		State enum.OrderState `json:"state"`
	}{
		Alias: Alias(o),
		State: o.State(),
	})
}
