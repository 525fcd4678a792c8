package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/money"
)

// ModifierOption is a selectable add-on such as "Soy Milk"
type ModifierOption struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	AdditionalCost   money.Cents       `json:"additional_cost"`
	AdditionalPrice  money.Cents       `json:"additional_price"`
	IngredientUsages []IngredientUsage `json:"ingredient_usages"`
}

// ModifierGroup is a named set of options such as "Milk Options"
type ModifierGroup struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Options []ModifierOption `json:"options"`
}

// FindOption returns the option with the given id, or nil
func (g *ModifierGroup) FindOption(id uuid.UUID) *ModifierOption {
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i]
		}
	}
	return nil
}

func (o ModifierOption) clone() ModifierOption {
	o.IngredientUsages = cloneUsages(o.IngredientUsages)
	return o
}

func (g ModifierGroup) clone() ModifierGroup {
	opts := make([]ModifierOption, len(g.Options))
	for i, o := range g.Options {
		opts[i] = o.clone()
	}
	g.Options = opts
	return g
}
