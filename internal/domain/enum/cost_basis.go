package enum

import (
	"fmt"
	"strings"
)

// CostBasis selects where reports take a sold line's unit cost from.
type CostBasis string

const (
	// CostBasisLive re-derives unit cost from the current catalog.
	CostBasisLive CostBasis = "live"
	// CostBasisSnapshot uses the unit cost captured when the sale was finalized.
	CostBasisSnapshot CostBasis = "snapshot"
)

// ParseCostBasis accepts "live" or "snapshot"; empty means live.
func ParseCostBasis(s string) (CostBasis, error) {
	switch CostBasis(strings.ToLower(strings.TrimSpace(s))) {
	case "", CostBasisLive:
		return CostBasisLive, nil
	case CostBasisSnapshot:
		return CostBasisSnapshot, nil
	}
	return "", fmt.Errorf("unknown cost basis %q (use live or snapshot)", s)
}
