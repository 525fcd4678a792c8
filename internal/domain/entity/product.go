package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/money"
)

// Product is a sellable catalog item
type Product struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	SKU            string            `json:"sku"`
	BasePrice      money.Cents       `json:"base_price"`
	BaseCost       money.Cents       `json:"base_cost"`
	Recipe         []IngredientUsage `json:"recipe"`
	ModifierGroups []ModifierGroup   `json:"modifier_groups"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FindGroup returns the modifier group with the given id, or nil
func (p *Product) FindGroup(id uuid.UUID) *ModifierGroup {
	for i := range p.ModifierGroups {
		if p.ModifierGroups[i].ID == id {
			return &p.ModifierGroups[i]
		}
	}
	return nil
}

// ResolveOption looks up an option inside one of the product's groups.
func (p *Product) ResolveOption(groupID, optionID uuid.UUID) (*ModifierGroup, *ModifierOption, bool) {
	g := p.FindGroup(groupID)
	if g == nil {
		return nil, nil, false
	}
	o := g.FindOption(optionID)
	if o == nil {
		return nil, nil, false
	}
	return g, o, true
}

// FindOptionAnyGroup looks an option up by id across every group.
func (p *Product) FindOptionAnyGroup(optionID uuid.UUID) *ModifierOption {
	for i := range p.ModifierGroups {
		if o := p.ModifierGroups[i].FindOption(optionID); o != nil {
			return o
		}
	}
	return nil
}

// Clone returns a deep copy
func (p *Product) Clone() *Product {
	c := *p
	c.Recipe = cloneUsages(p.Recipe)
	c.ModifierGroups = make([]ModifierGroup, len(p.ModifierGroups))
	for i, g := range p.ModifierGroups {
		c.ModifierGroups[i] = g.clone()
	}
	return &c
}
