package enum

import "encoding/json"

// StockStatus classifies an ingredient's quantity against its reorder level
type StockStatus int

const (
	StockStatusSufficient StockStatus = 0
	StockStatusLow        StockStatus = 1
	StockStatusOut        StockStatus = 2
)

func (s StockStatus) String() string {
	switch s {
	case StockStatusLow:
		return "low_stock"
	case StockStatusOut:
		return "out_of_stock"
	default:
		return "sufficient"
	}
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
